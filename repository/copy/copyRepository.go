// repository/copy/copyRepository.go
package copyrepo

import (
	"context"
	"errors"
	"time"

	"github.com/azur-14/bookworm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// All Shelf.capacity mutation happens in this package, inside the same
// transaction as the copy mutation it tracks. Callers never touch the
// counter directly.

var ErrShelfNotFound = errors.New("shelf not found")

// CopyPatch is a partial update; nil fields are left untouched.
type CopyPatch struct {
	ShelfID        *int64
	Status         *model.CopyStatus
	DamageEvidence *string
}

type Repo interface {
	InsertBatch(ctx context.Context, copies []model.BookCopy) error
	ByID(ctx context.Context, id string) (*model.BookCopy, error)
	ByBook(ctx context.Context, bookID string) ([]model.BookCopy, error)
	CountAvailable(ctx context.Context, bookID string) (int64, error)

	// ClaimAvailable is the atomic find-and-flip: exactly one caller can
	// take a given copy because the filter includes status=available.
	// Returns mongo.ErrNoDocuments when the book has no free copy.
	ClaimAvailable(ctx context.Context, bookID string) (*model.BookCopy, error)

	SetStatus(ctx context.Context, id string, status model.CopyStatus, damageEvidence *string) error
	UpdateCopy(ctx context.Context, id string, p CopyPatch) (*model.BookCopy, error)
	BulkAssignShelf(ctx context.Context, ids []string, shelfID int64) (int64, error)
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}

type repo struct {
	db      *mongo.Database
	copies  *mongo.Collection
	shelves *mongo.Collection
}

func New(db *mongo.Database) Repo {
	return &repo{
		db:      db,
		copies:  db.Collection("book_copies"),
		shelves: db.Collection("shelves"),
	}
}

func (r *repo) InsertBatch(ctx context.Context, copies []model.BookCopy) error {
	docs := make([]interface{}, len(copies))
	for i := range copies {
		docs[i] = copies[i]
	}
	_, err := r.copies.InsertMany(ctx, docs)
	return err
}

func (r *repo) ByID(ctx context.Context, id string) (*model.BookCopy, error) {
	var c model.BookCopy
	if err := r.copies.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) ByBook(ctx context.Context, bookID string) ([]model.BookCopy, error) {
	cur, err := r.copies.Find(ctx, bson.M{"book_id": bookID})
	if err != nil {
		return nil, err
	}
	var out []model.BookCopy
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) CountAvailable(ctx context.Context, bookID string) (int64, error) {
	return r.copies.CountDocuments(ctx, bson.M{
		"book_id": bookID,
		"status":  model.CopyAvailable,
	})
}

func (r *repo) ClaimAvailable(ctx context.Context, bookID string) (*model.BookCopy, error) {
	var c model.BookCopy
	err := r.copies.FindOneAndUpdate(ctx,
		bson.M{"book_id": bookID, "status": model.CopyAvailable},
		bson.M{"$set": bson.M{"status": model.CopyBorrowed}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) SetStatus(ctx context.Context, id string, status model.CopyStatus, damageEvidence *string) error {
	set := bson.M{"status": status}
	if damageEvidence != nil {
		set["damage_evidence"] = *damageEvidence
	}
	res, err := r.copies.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateCopy applies a partial update. A shelf change moves the copy's
// capacity unit from the old shelf to the new one inside the same
// transaction, so no intermediate state is observable.
func (r *repo) UpdateCopy(ctx context.Context, id string, p CopyPatch) (*model.BookCopy, error) {
	sess, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var cur model.BookCopy
		if err := r.copies.FindOne(sc, bson.M{"id": id}).Decode(&cur); err != nil {
			return nil, err
		}

		set := bson.M{}
		if p.Status != nil {
			set["status"] = *p.Status
		}
		if p.DamageEvidence != nil {
			set["damage_evidence"] = *p.DamageEvidence
		}

		shelfChanged := p.ShelfID != nil &&
			(cur.ShelfID == nil || *cur.ShelfID != *p.ShelfID)
		if shelfChanged {
			set["shelf_id"] = *p.ShelfID
		}

		if len(set) > 0 {
			if _, err := r.copies.UpdateOne(sc, bson.M{"id": id}, bson.M{"$set": set}); err != nil {
				return nil, err
			}
		}

		if shelfChanged {
			if cur.ShelfID != nil {
				if err := r.incCapacity(sc, *cur.ShelfID, -1); err != nil {
					return nil, err
				}
			}
			if err := r.incCapacity(sc, *p.ShelfID, 1); err != nil {
				return nil, err
			}
		}

		var updated model.BookCopy
		if err := r.copies.FindOne(sc, bson.M{"id": id}).Decode(&updated); err != nil {
			return nil, err
		}
		return &updated, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*model.BookCopy), nil
}

// BulkAssignShelf binds unassigned copies to a shelf and bumps the
// shelf's capacity by the number of copies actually changed. Copies
// already on a shelf are skipped, so re-running the same call is a
// no-op. Copy update and capacity increment commit together.
func (r *repo) BulkAssignShelf(ctx context.Context, ids []string, shelfID int64) (int64, error) {
	sess, err := r.db.Client().StartSession()
	if err != nil {
		return 0, err
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.copies.UpdateMany(sc,
			bson.M{"id": bson.M{"$in": ids}, "shelf_id": nil},
			bson.M{"$set": bson.M{"shelf_id": shelfID}},
		)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount > 0 {
			if err := r.incCapacity(sc, shelfID, res.ModifiedCount); err != nil {
				return nil, err
			}
		}
		return res.ModifiedCount, nil
	})
	if err != nil {
		return 0, err
	}
	return out.(int64), nil
}

// DeleteByBook removes every copy of the book and decrements each
// touched shelf by the exact number of that book's copies it held.
// Shelf counts are grouped before the delete executes.
func (r *repo) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	sess, err := r.db.Client().StartSession()
	if err != nil {
		return 0, err
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		copies, err := r.findByBook(sc, bookID)
		if err != nil {
			return nil, err
		}
		perShelf := map[int64]int64{}
		for _, c := range copies {
			if c.ShelfID != nil {
				perShelf[*c.ShelfID]++
			}
		}

		res, err := r.copies.DeleteMany(sc, bson.M{"book_id": bookID})
		if err != nil {
			return nil, err
		}
		for shelfID, n := range perShelf {
			if err := r.incCapacity(sc, shelfID, -n); err != nil {
				return nil, err
			}
		}
		return res.DeletedCount, nil
	})
	if err != nil {
		return 0, err
	}
	return out.(int64), nil
}

func (r *repo) findByBook(ctx context.Context, bookID string) ([]model.BookCopy, error) {
	cur, err := r.copies.Find(ctx, bson.M{"book_id": bookID})
	if err != nil {
		return nil, err
	}
	var out []model.BookCopy
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) incCapacity(ctx context.Context, shelfID, delta int64) error {
	res, err := r.shelves.UpdateOne(ctx,
		bson.M{"id": shelfID},
		bson.M{"$inc": bson.M{"capacity": delta}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrShelfNotFound
	}
	return nil
}

// NewCopies builds the batch of available, unshelved copies created
// alongside a book or a quantity increase.
func NewCopies(bookID string, n int, newID func() string) []model.BookCopy {
	now := time.Now().UTC()
	out := make([]model.BookCopy, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.BookCopy{
			ID:         newID(),
			BookID:     bookID,
			ShelfID:    nil,
			Status:     model.CopyAvailable,
			TimeCreate: now,
		})
	}
	return out
}
