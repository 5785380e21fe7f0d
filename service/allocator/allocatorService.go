package allocator

import (
	"context"
	"errors"

	"github.com/azur-14/bookworm/model"
	copyrepo "github.com/azur-14/bookworm/repository/copy"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// The allocator is the only owner of copy borrow-state and shelf
// capacity. Claim/release flip copies between available and borrowed;
// shelf moves ride the repository's transactions.

type Repo interface {
	InsertBatch(ctx context.Context, copies []model.BookCopy) error
	ByID(ctx context.Context, id string) (*model.BookCopy, error)
	ByBook(ctx context.Context, bookID string) ([]model.BookCopy, error)
	CountAvailable(ctx context.Context, bookID string) (int64, error)
	ClaimAvailable(ctx context.Context, bookID string) (*model.BookCopy, error)
	SetStatus(ctx context.Context, id string, status model.CopyStatus, damageEvidence *string) error
	UpdateCopy(ctx context.Context, id string, p copyrepo.CopyPatch) (*model.BookCopy, error)
	BulkAssignShelf(ctx context.Context, ids []string, shelfID int64) (int64, error)
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}

type Service interface {
	// Claim atomically binds one available copy of the book; NotFound
	// when the title has no free copy.
	Claim(ctx context.Context, bookID string) (*model.BookCopy, error)

	// Release puts a copy back to available. Compensating action for a
	// failed or terminated borrow.
	Release(ctx context.Context, copyID string) error

	SetStatus(ctx context.Context, copyID string, status model.CopyStatus, damageEvidence *string) error
	UpdateCopy(ctx context.Context, copyID string, p copyrepo.CopyPatch) (*model.BookCopy, error)
	ReassignShelf(ctx context.Context, copyIDs []string, shelfID int64) (int64, error)

	AddCopies(ctx context.Context, bookID string, n int) (int, error)
	DeleteForBook(ctx context.Context, bookID string) (int64, error)

	CopyByID(ctx context.Context, copyID string) (*model.BookCopy, error)
	CopiesByBook(ctx context.Context, bookID string) ([]model.BookCopy, error)
	AvailableCount(ctx context.Context, bookID string) (int64, error)
}

type service struct {
	r     Repo
	newID func() string
}

func New(r Repo) Service {
	return &service{r: r, newID: uuid.NewString}
}

func (s *service) Claim(ctx context.Context, bookID string) (*model.BookCopy, error) {
	c, err := s.r.ClaimAvailable(ctx, bookID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.ErrNotFound, "no available copy found")
		}
		return nil, apperr.Wrap(apperr.ErrPersistence, "claim copy", err)
	}
	return c, nil
}

func (s *service) Release(ctx context.Context, copyID string) error {
	return s.SetStatus(ctx, copyID, model.CopyAvailable, nil)
}

func (s *service) SetStatus(ctx context.Context, copyID string, status model.CopyStatus, damageEvidence *string) error {
	if !model.ValidCopyStatus(status) {
		return apperr.New(apperr.ErrValidation, "invalid copy status")
	}
	err := s.r.SetStatus(ctx, copyID, status, damageEvidence)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.ErrNotFound, "book copy not found")
		}
		return apperr.Wrap(apperr.ErrPersistence, "set copy status", err)
	}
	return nil
}

func (s *service) UpdateCopy(ctx context.Context, copyID string, p copyrepo.CopyPatch) (*model.BookCopy, error) {
	if p.Status != nil && !model.ValidCopyStatus(*p.Status) {
		return nil, apperr.New(apperr.ErrValidation, "invalid copy status")
	}
	c, err := s.r.UpdateCopy(ctx, copyID, p)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, apperr.New(apperr.ErrNotFound, "book copy not found")
		case errors.Is(err, copyrepo.ErrShelfNotFound):
			return nil, apperr.New(apperr.ErrNotFound, "shelf not found")
		}
		return nil, apperr.Wrap(apperr.ErrPersistence, "update copy", err)
	}
	return c, nil
}

func (s *service) ReassignShelf(ctx context.Context, copyIDs []string, shelfID int64) (int64, error) {
	if len(copyIDs) == 0 {
		return 0, apperr.New(apperr.ErrValidation, "no copy ids given")
	}
	n, err := s.r.BulkAssignShelf(ctx, copyIDs, shelfID)
	if err != nil {
		if errors.Is(err, copyrepo.ErrShelfNotFound) {
			return 0, apperr.New(apperr.ErrNotFound, "shelf not found")
		}
		return 0, apperr.Wrap(apperr.ErrPersistence, "bulk assign shelf", err)
	}
	return n, nil
}

func (s *service) AddCopies(ctx context.Context, bookID string, n int) (int, error) {
	if n <= 0 {
		return 0, apperr.New(apperr.ErrValidation, "copy count must be positive")
	}
	copies := copyrepo.NewCopies(bookID, n, s.newID)
	if err := s.r.InsertBatch(ctx, copies); err != nil {
		return 0, apperr.Wrap(apperr.ErrPersistence, "insert copies", err)
	}
	return n, nil
}

func (s *service) DeleteForBook(ctx context.Context, bookID string) (int64, error) {
	n, err := s.r.DeleteByBook(ctx, bookID)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrPersistence, "delete copies for book", err)
	}
	return n, nil
}

func (s *service) CopyByID(ctx context.Context, copyID string) (*model.BookCopy, error) {
	c, err := s.r.ByID(ctx, copyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.ErrNotFound, "book copy not found")
		}
		return nil, apperr.Wrap(apperr.ErrPersistence, "get copy", err)
	}
	return c, nil
}

func (s *service) CopiesByBook(ctx context.Context, bookID string) ([]model.BookCopy, error) {
	copies, err := s.r.ByBook(ctx, bookID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list copies for book", err)
	}
	return copies, nil
}

func (s *service) AvailableCount(ctx context.Context, bookID string) (int64, error) {
	n, err := s.r.CountAvailable(ctx, bookID)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrPersistence, "count available copies", err)
	}
	return n, nil
}
