// repository/borrow/borrowRepository.go
package borrowrepo

import (
	"context"
	"time"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo interface {
	Insert(ctx context.Context, req model.BorrowRequest) error
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (*model.BorrowRequest, error)
	BindCopy(ctx context.Context, id, copyID string) error
	SetStatus(ctx context.Context, id string, status model.BorrowStatus) error

	// ExistsActive reports whether the user already has a pending or
	// approved request for the title.
	ExistsActive(ctx context.Context, userID, bookID string) (bool, error)

	ListAll(ctx context.Context) ([]model.BorrowRequest, error)
	ListByUser(ctx context.Context, userID string) ([]model.BorrowRequest, error)
	ListIDsByUser(ctx context.Context, userID string) ([]string, error)

	// ListStuckPending returns requests still pending with no bound copy
	// older than the cutoff: leftovers of a crash between the persist and
	// claim phases, for out-of-band reconciliation.
	ListStuckPending(ctx context.Context, olderThan time.Time) ([]model.BorrowRequest, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("borrow_requests")} }

func (r *repo) Insert(ctx context.Context, req model.BorrowRequest) error {
	_, err := r.col.InsertOne(ctx, req)
	return err
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

func (r *repo) ByID(ctx context.Context, id string) (*model.BorrowRequest, error) {
	var req model.BorrowRequest
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) BindCopy(ctx context.Context, id, copyID string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"book_copy_id": copyID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *repo) SetStatus(ctx context.Context, id string, status model.BorrowStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *repo) ExistsActive(ctx context.Context, userID, bookID string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"book_id": bookID,
		"status":  bson.M{"$in": bson.A{model.BorrowPending, model.BorrowApproved}},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repo) ListAll(ctx context.Context) ([]model.BorrowRequest, error) {
	return r.list(ctx, bson.M{})
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]model.BorrowRequest, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *repo) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	reqs, err := r.list(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reqs))
	for _, q := range reqs {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (r *repo) ListStuckPending(ctx context.Context, olderThan time.Time) ([]model.BorrowRequest, error) {
	return r.list(ctx, bson.M{
		"status":       model.BorrowPending,
		"book_copy_id": nil,
		"request_date": bson.M{"$lt": olderThan},
	})
}

func (r *repo) list(ctx context.Context, filter bson.M) ([]model.BorrowRequest, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.M{"request_date": -1}))
	if err != nil {
		return nil, err
	}
	var out []model.BorrowRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
