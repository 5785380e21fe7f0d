package allocator_test

import (
	"context"
	"testing"

	"github.com/azur-14/bookworm/model"
	copyrepo "github.com/azur-14/bookworm/repository/copy"
	"github.com/azur-14/bookworm/service/allocator"
	"github.com/azur-14/bookworm/util/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

type repoMock struct {
	insertBatchFn     func(ctx context.Context, copies []model.BookCopy) error
	byIDFn            func(ctx context.Context, id string) (*model.BookCopy, error)
	byBookFn          func(ctx context.Context, bookID string) ([]model.BookCopy, error)
	countAvailableFn  func(ctx context.Context, bookID string) (int64, error)
	claimAvailableFn  func(ctx context.Context, bookID string) (*model.BookCopy, error)
	setStatusFn       func(ctx context.Context, id string, status model.CopyStatus, damageEvidence *string) error
	updateCopyFn      func(ctx context.Context, id string, p copyrepo.CopyPatch) (*model.BookCopy, error)
	bulkAssignShelfFn func(ctx context.Context, ids []string, shelfID int64) (int64, error)
	deleteByBookFn    func(ctx context.Context, bookID string) (int64, error)
}

func (m *repoMock) InsertBatch(ctx context.Context, copies []model.BookCopy) error {
	return m.insertBatchFn(ctx, copies)
}
func (m *repoMock) ByID(ctx context.Context, id string) (*model.BookCopy, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByBook(ctx context.Context, bookID string) ([]model.BookCopy, error) {
	return m.byBookFn(ctx, bookID)
}
func (m *repoMock) CountAvailable(ctx context.Context, bookID string) (int64, error) {
	return m.countAvailableFn(ctx, bookID)
}
func (m *repoMock) ClaimAvailable(ctx context.Context, bookID string) (*model.BookCopy, error) {
	return m.claimAvailableFn(ctx, bookID)
}
func (m *repoMock) SetStatus(ctx context.Context, id string, status model.CopyStatus, damageEvidence *string) error {
	return m.setStatusFn(ctx, id, status, damageEvidence)
}
func (m *repoMock) UpdateCopy(ctx context.Context, id string, p copyrepo.CopyPatch) (*model.BookCopy, error) {
	return m.updateCopyFn(ctx, id, p)
}
func (m *repoMock) BulkAssignShelf(ctx context.Context, ids []string, shelfID int64) (int64, error) {
	return m.bulkAssignShelfFn(ctx, ids, shelfID)
}
func (m *repoMock) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	return m.deleteByBookFn(ctx, bookID)
}

func TestClaim_Success(t *testing.T) {
	shelf := int64(2)
	m := &repoMock{
		claimAvailableFn: func(ctx context.Context, bookID string) (*model.BookCopy, error) {
			if bookID != "b001" {
				t.Fatalf("claim for %q; want b001", bookID)
			}
			return &model.BookCopy{ID: "c1", BookID: "b001", ShelfID: &shelf, Status: model.CopyBorrowed}, nil
		},
	}
	s := allocator.New(m)
	c, err := s.Claim(context.Background(), "b001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "c1" || c.Status != model.CopyBorrowed {
		t.Fatalf("got %+v; want claimed c1", c)
	}
}

func TestClaim_NoCopyIsNotFound(t *testing.T) {
	m := &repoMock{
		claimAvailableFn: func(ctx context.Context, bookID string) (*model.BookCopy, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	s := allocator.New(m)
	_, err := s.Claim(context.Background(), "b001")
	if apperr.Code(err) != apperr.ErrNotFound {
		t.Fatalf("got code %q; want NOT_FOUND", apperr.Code(err))
	}
}

func TestRelease_SetsAvailable(t *testing.T) {
	var gotStatus model.CopyStatus
	m := &repoMock{
		setStatusFn: func(ctx context.Context, id string, status model.CopyStatus, damageEvidence *string) error {
			gotStatus = status
			return nil
		},
	}
	s := allocator.New(m)
	if err := s.Release(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != model.CopyAvailable {
		t.Fatalf("release set status %q; want available", gotStatus)
	}
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	s := allocator.New(&repoMock{})
	err := s.SetStatus(context.Background(), "c1", model.CopyStatus("vanished"), nil)
	if apperr.Code(err) != apperr.ErrValidation {
		t.Fatalf("got code %q; want VALIDATION", apperr.Code(err))
	}
}

func TestReassignShelf_EmptyIDs(t *testing.T) {
	s := allocator.New(&repoMock{})
	_, err := s.ReassignShelf(context.Background(), nil, 1)
	if apperr.Code(err) != apperr.ErrValidation {
		t.Fatalf("got code %q; want VALIDATION", apperr.Code(err))
	}
}

func TestReassignShelf_UnknownShelf(t *testing.T) {
	m := &repoMock{
		bulkAssignShelfFn: func(ctx context.Context, ids []string, shelfID int64) (int64, error) {
			return 0, copyrepo.ErrShelfNotFound
		},
	}
	s := allocator.New(m)
	_, err := s.ReassignShelf(context.Background(), []string{"c1"}, 99)
	if apperr.Code(err) != apperr.ErrNotFound {
		t.Fatalf("got code %q; want NOT_FOUND", apperr.Code(err))
	}
}

func TestAddCopies_BuildsAvailableBatch(t *testing.T) {
	var batch []model.BookCopy
	m := &repoMock{
		insertBatchFn: func(ctx context.Context, copies []model.BookCopy) error {
			batch = copies
			return nil
		},
	}
	s := allocator.New(m)
	n, err := s.AddCopies(context.Background(), "b007", 3)
	if err != nil || n != 3 {
		t.Fatalf("got n=%d err=%v; want 3 nil", n, err)
	}
	if len(batch) != 3 {
		t.Fatalf("inserted %d copies; want 3", len(batch))
	}
	seen := map[string]bool{}
	for _, c := range batch {
		if c.BookID != "b007" || c.Status != model.CopyAvailable || c.ShelfID != nil {
			t.Fatalf("bad copy %+v; want available unshelved copy of b007", c)
		}
		if c.ID == "" || seen[c.ID] {
			t.Fatalf("copy ids must be unique and non-empty, got %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestAddCopies_RejectsNonPositive(t *testing.T) {
	s := allocator.New(&repoMock{})
	if _, err := s.AddCopies(context.Background(), "b001", 0); apperr.Code(err) != apperr.ErrValidation {
		t.Fatal("expected validation error for n=0")
	}
}

func TestUpdateCopy_InvalidStatus(t *testing.T) {
	s := allocator.New(&repoMock{})
	bad := model.CopyStatus("melted")
	_, err := s.UpdateCopy(context.Background(), "c1", copyrepo.CopyPatch{Status: &bad})
	if apperr.Code(err) != apperr.ErrValidation {
		t.Fatalf("got code %q; want VALIDATION", apperr.Code(err))
	}
}

func TestCopiesByBook_ListsAllCopies(t *testing.T) {
	m := &repoMock{
		byBookFn: func(ctx context.Context, bookID string) ([]model.BookCopy, error) {
			if bookID != "b001" {
				t.Fatalf("listed %q; want b001", bookID)
			}
			return []model.BookCopy{
				{ID: "c1", BookID: "b001", Status: model.CopyAvailable},
				{ID: "c2", BookID: "b001", Status: model.CopyBorrowed},
			}, nil
		},
	}
	s := allocator.New(m)
	copies, err := s.CopiesByBook(context.Background(), "b001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(copies) != 2 {
		t.Fatalf("got %d copies; want 2", len(copies))
	}
}
