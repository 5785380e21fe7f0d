// repository/bill/billRepository.go
package billrepo

import (
	"context"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo interface {
	Insert(ctx context.Context, b model.Bill) error
	ListAll(ctx context.Context) ([]model.Bill, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("bills")} }

func (r *repo) Insert(ctx context.Context, b model.Bill) error {
	_, err := r.col.InsertOne(ctx, b)
	return err
}

func (r *repo) ListAll(ctx context.Context) ([]model.Bill, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	var out []model.Bill
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
