// repository/shelf/shelfRepository.go
package shelfrepo

import (
	"context"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Shelf reads and creation only. Capacity is owned by the copy
// repository and never written here.
type Repo interface {
	Insert(ctx context.Context, s model.Shelf) error
	ByID(ctx context.Context, id int64) (*model.Shelf, error)
	Available(ctx context.Context) ([]model.Shelf, error)
	NextID(ctx context.Context) (int64, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("shelves")} }

func (r *repo) Insert(ctx context.Context, s model.Shelf) error {
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Shelf, error) {
	var s model.Shelf
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) Available(ctx context.Context) ([]model.Shelf, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"$expr": bson.M{"$gt": bson.A{"$capacitylimit", "$capacity"}},
	})
	if err != nil {
		return nil, err
	}
	var out []model.Shelf
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) NextID(ctx context.Context) (int64, error) {
	var last model.Shelf
	err := r.col.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.M{"id": -1})).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ID + 1, nil
}
