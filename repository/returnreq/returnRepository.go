// repository/returnreq/returnRepository.go
package returnrepo

import (
	"context"
	"time"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReturnPatch updates status plus the optional condition note and image
// evidence; nil fields stay untouched.
type ReturnPatch struct {
	Status      model.ReturnStatus
	Condition   *string
	ReturnImage *string
	ReturnDate  time.Time
}

type Repo interface {
	Insert(ctx context.Context, req model.ReturnRequest) error
	ByID(ctx context.Context, id string) (*model.ReturnRequest, error)
	ByBorrowID(ctx context.Context, borrowID string) (*model.ReturnRequest, error)
	Update(ctx context.Context, id string, p ReturnPatch) error
	ListByBorrowIDs(ctx context.Context, borrowIDs []string) ([]model.ReturnRequest, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("return_requests")} }

func (r *repo) Insert(ctx context.Context, req model.ReturnRequest) error {
	_, err := r.col.InsertOne(ctx, req)
	return err
}

func (r *repo) ByID(ctx context.Context, id string) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) ByBorrowID(ctx context.Context, borrowID string) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	err := r.col.FindOne(ctx, bson.M{"borrow_request_id": borrowID}).Decode(&req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) Update(ctx context.Context, id string, p ReturnPatch) error {
	set := bson.M{"status": p.Status, "return_date": p.ReturnDate}
	if p.Condition != nil {
		set["condition"] = *p.Condition
	}
	if p.ReturnImage != nil {
		set["return_image"] = *p.ReturnImage
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *repo) ListByBorrowIDs(ctx context.Context, borrowIDs []string) ([]model.ReturnRequest, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"borrow_request_id": bson.M{"$in": borrowIDs}},
		options.Find().SetSort(bson.M{"return_date": -1}))
	if err != nil {
		return nil, err
	}
	var out []model.ReturnRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
