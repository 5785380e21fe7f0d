// repository/history/historyRepository.go
package historyrepo

import (
	"context"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Append-only store. Nothing here updates or deletes.
type Repo interface {
	Append(ctx context.Context, h model.StatusHistory) error
	ByRefs(ctx context.Context, refs []model.RequestRef) ([]model.StatusHistory, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo {
	return &repo{col: db.Collection("request_status_histories")}
}

func (r *repo) Append(ctx context.Context, h model.StatusHistory) error {
	_, err := r.col.InsertOne(ctx, h)
	return err
}

// ByRefs returns every entry keyed by any of the resolved refs, newest
// first. The sort happens in one query over the combined id set, so the
// caller gets borrow and return entries already interleaved by time.
func (r *repo) ByRefs(ctx context.Context, refs []model.RequestRef) ([]model.StatusHistory, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	cur, err := r.col.Find(ctx,
		bson.M{"requestId": bson.M{"$in": ids}},
		options.Find().SetSort(bson.M{"changeTime": -1}))
	if err != nil {
		return nil, err
	}
	var out []model.StatusHistory
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
