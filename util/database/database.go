package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func New(ctx context.Context, uri, name string) (*DB, error) {
	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cl.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(ctx)
		return nil, err
	}
	return &DB{Client: cl, DB: cl.Database(name)}, nil
}

func (d *DB) Close(ctx context.Context) error { return d.Client.Disconnect(ctx) }
