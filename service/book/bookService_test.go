package booksvc_test

import (
	"context"
	"testing"

	"github.com/azur-14/bookworm/model"
	booksvc "github.com/azur-14/bookworm/service/book"
	"github.com/azur-14/bookworm/util/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

type repoMock struct {
	insertFn         func(ctx context.Context, b model.Book) error
	byIDFn           func(ctx context.Context, id string) (*model.Book, error)
	titlesByIDsFn    func(ctx context.Context, ids []string) (map[string]string, error)
	adjustQuantityFn func(ctx context.Context, id string, delta int) error
	deleteFn         func(ctx context.Context, id string) error
	nextIDFn         func(ctx context.Context) (string, error)
}

func (m *repoMock) Insert(ctx context.Context, b model.Book) error { return m.insertFn(ctx, b) }
func (m *repoMock) ByID(ctx context.Context, id string) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) TitlesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	return m.titlesByIDsFn(ctx, ids)
}
func (m *repoMock) AdjustQuantity(ctx context.Context, id string, delta int) error {
	return m.adjustQuantityFn(ctx, id, delta)
}
func (m *repoMock) Delete(ctx context.Context, id string) error { return m.deleteFn(ctx, id) }
func (m *repoMock) NextID(ctx context.Context) (string, error)  { return m.nextIDFn(ctx) }

type allocMock struct {
	addCopiesFn     func(ctx context.Context, bookID string, n int) (int, error)
	deleteForBookFn func(ctx context.Context, bookID string) (int64, error)
}

func (m *allocMock) AddCopies(ctx context.Context, bookID string, n int) (int, error) {
	return m.addCopiesFn(ctx, bookID, n)
}
func (m *allocMock) DeleteForBook(ctx context.Context, bookID string) (int64, error) {
	return m.deleteForBookFn(ctx, bookID)
}

func TestCreate_MintsCopiesPerUnit(t *testing.T) {
	var inserted model.Book
	var copiesFor string
	var copiesN int
	repo := &repoMock{
		nextIDFn: func(ctx context.Context) (string, error) { return "b004", nil },
		insertFn: func(ctx context.Context, b model.Book) error {
			inserted = b
			return nil
		},
	}
	alloc := &allocMock{addCopiesFn: func(ctx context.Context, bookID string, n int) (int, error) {
		copiesFor, copiesN = bookID, n
		return n, nil
	}}
	svc := booksvc.New(repo, alloc)

	out, err := svc.Create(context.Background(), booksvc.CreateReq{
		Title:         "The Go Programming Language",
		Author:        "Donovan & Kernighan",
		TotalQuantity: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "b004" {
		t.Errorf("expected id b004, got %s", out.ID)
	}
	if inserted.AvailableQuantity != 3 || inserted.TotalQuantity != 3 {
		t.Errorf("expected quantities 3/3, got %d/%d", inserted.AvailableQuantity, inserted.TotalQuantity)
	}
	if copiesFor != "b004" || copiesN != 3 {
		t.Errorf("expected 3 copies for b004, got %d for %s", copiesN, copiesFor)
	}
}

func TestCreate_RejectsZeroQuantity(t *testing.T) {
	svc := booksvc.New(&repoMock{}, &allocMock{})
	_, err := svc.Create(context.Background(), booksvc.CreateReq{Title: "x", TotalQuantity: 0})
	if apperr.Code(err) != apperr.ErrValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestIncreaseQuantity_AdjustsThenMints(t *testing.T) {
	var delta, minted int
	repo := &repoMock{
		adjustQuantityFn: func(ctx context.Context, id string, d int) error {
			delta = d
			return nil
		},
		byIDFn: func(ctx context.Context, id string) (*model.Book, error) {
			return &model.Book{ID: id, TotalQuantity: 5, AvailableQuantity: 4}, nil
		},
	}
	alloc := &allocMock{addCopiesFn: func(ctx context.Context, bookID string, n int) (int, error) {
		minted = n
		return n, nil
	}}
	svc := booksvc.New(repo, alloc)

	out, err := svc.IncreaseQuantity(context.Background(), "b001", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != 2 || minted != 2 {
		t.Errorf("expected counter bump and mint of 2, got %d/%d", delta, minted)
	}
	if out.ID != "b001" {
		t.Errorf("expected refreshed book, got %v", out)
	}
}

func TestIncreaseQuantity_UnknownBook(t *testing.T) {
	repo := &repoMock{adjustQuantityFn: func(ctx context.Context, id string, d int) error {
		return mongo.ErrNoDocuments
	}}
	svc := booksvc.New(repo, &allocMock{})
	_, err := svc.IncreaseQuantity(context.Background(), "nope", 1)
	if apperr.Code(err) != apperr.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDelete_CascadesCopiesFirst(t *testing.T) {
	var order []string
	repo := &repoMock{
		byIDFn: func(ctx context.Context, id string) (*model.Book, error) {
			return &model.Book{ID: id}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			order = append(order, "book")
			return nil
		},
	}
	alloc := &allocMock{deleteForBookFn: func(ctx context.Context, bookID string) (int64, error) {
		order = append(order, "copies")
		return 3, nil
	}}
	svc := booksvc.New(repo, alloc)

	if err := svc.Delete(context.Background(), "b001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "copies" || order[1] != "book" {
		t.Errorf("expected copies removed before the book, got %v", order)
	}
}

func TestDelete_UnknownBook(t *testing.T) {
	repo := &repoMock{byIDFn: func(ctx context.Context, id string) (*model.Book, error) {
		return nil, mongo.ErrNoDocuments
	}}
	svc := booksvc.New(repo, &allocMock{})
	err := svc.Delete(context.Background(), "nope")
	if apperr.Code(err) != apperr.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestTitlesByIDs_EmptyInput(t *testing.T) {
	svc := booksvc.New(&repoMock{}, &allocMock{})
	titles, err := svc.TitlesByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 0 {
		t.Errorf("expected empty map, got %v", titles)
	}
}
