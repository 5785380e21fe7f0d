// repository/book/bookRepository.go
package bookrepo

import (
	"context"
	"fmt"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repo interface {
	Insert(ctx context.Context, b model.Book) error
	ByID(ctx context.Context, id string) (*model.Book, error)
	TitlesByIDs(ctx context.Context, ids []string) (map[string]string, error)
	AdjustQuantity(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) error
	NextID(ctx context.Context) (string, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("books")} }

func (r *repo) Insert(ctx context.Context, b model.Book) error {
	_, err := r.col.InsertOne(ctx, b)
	return err
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Book, error) {
	var b model.Book
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) TitlesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	cur, err := r.col.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var books []model.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(books))
	for _, b := range books {
		out[b.ID] = b.Title
	}
	return out, nil
}

func (r *repo) AdjustQuantity(ctx context.Context, id string, delta int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$inc": bson.M{"total_quantity": delta, "available_quantity": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// NextID yields the next id in the b001, b002, ... scheme.
func (r *repo) NextID(ctx context.Context) (string, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("b%03d", n+1), nil
}
