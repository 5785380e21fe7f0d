// repository/roombooking/roomBookingRepository.go
package roombookingrepo

import (
	"context"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo interface {
	InsertBatch(ctx context.Context, reqs []model.RoomBookingRequest) error
	ByID(ctx context.Context, id string) (*model.RoomBookingRequest, error)
	SetStatus(ctx context.Context, id string, status model.RoomBookingStatus) error
	ListByUser(ctx context.Context, userID string) ([]model.RoomBookingRequest, error)
	Count(ctx context.Context) (int64, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo {
	return &repo{col: db.Collection("room_booking_requests")}
}

func (r *repo) InsertBatch(ctx context.Context, reqs []model.RoomBookingRequest) error {
	docs := make([]interface{}, len(reqs))
	for i := range reqs {
		docs[i] = reqs[i]
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *repo) ByID(ctx context.Context, id string) (*model.RoomBookingRequest, error) {
	var req model.RoomBookingRequest
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) SetStatus(ctx context.Context, id string, status model.RoomBookingStatus) error {
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

func (r *repo) ListByUser(ctx context.Context, userID string) ([]model.RoomBookingRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"request_time": -1}))
	if err != nil {
		return nil, err
	}
	var out []model.RoomBookingRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
