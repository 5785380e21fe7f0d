package booksvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/azur-14/bookworm/model"
	"github.com/azur-14/bookworm/util/apperr"

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

// Allocator is the slice of the copy allocator the book lifecycle
// needs: batch creation on create/increase, cascade on delete.
type Allocator interface {
	AddCopies(ctx context.Context, bookID string, n int) (int, error)
	DeleteForBook(ctx context.Context, bookID string) (int64, error)
}

type CreateReq struct {
	Image         string
	Title         string
	Author        string
	Publisher     string
	PublishYear   int
	CategoryID    string
	TotalQuantity int
	Description   *string
}

type Service interface {
	// Create persists the book and one available copy per unit of
	// total quantity.
	Create(ctx context.Context, req CreateReq) (*model.Book, error)

	// IncreaseQuantity adds n copies and bumps the book's counters.
	IncreaseQuantity(ctx context.Context, id string, n int) (*model.Book, error)

	// Delete removes the book's copies first (shelf capacities adjust
	// per shelf inside the allocator), then the book itself.
	Delete(ctx context.Context, id string) error

	ByID(ctx context.Context, id string) (*model.Book, error)
	TitlesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type service struct {
	r Repo
	a Allocator
}

func New(r Repo, a Allocator) Service { return &service{r: r, a: a} }

func (s *service) Create(ctx context.Context, req CreateReq) (*model.Book, error) {
	if strings.TrimSpace(req.Title) == "" || req.TotalQuantity <= 0 {
		return nil, apperr.New(apperr.ErrValidation, "title and positive total_quantity required")
	}
	id, err := s.r.NextID(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "next book id", err)
	}
	b := model.Book{
		ID:                id,
		Image:             req.Image,
		Title:             req.Title,
		Author:            req.Author,
		Publisher:         req.Publisher,
		PublishYear:       req.PublishYear,
		CategoryID:        req.CategoryID,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.TotalQuantity,
		Description:       req.Description,
		TimeCreate:        time.Now().UTC(),
	}
	if err := s.r.Insert(ctx, b); err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "insert book", err)
	}
	if _, err := s.a.AddCopies(ctx, b.ID, req.TotalQuantity); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *service) IncreaseQuantity(ctx context.Context, id string, n int) (*model.Book, error) {
	if n <= 0 {
		return nil, apperr.New(apperr.ErrValidation, "add must be positive")
	}
	if err := s.r.AdjustQuantity(ctx, id, n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.ErrNotFound, "book not found")
		}
		return nil, apperr.Wrap(apperr.ErrPersistence, "adjust quantity", err)
	}
	if _, err := s.a.AddCopies(ctx, id, n); err != nil {
		return nil, err
	}
	return s.ByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.a.DeleteForBook(ctx, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.ErrNotFound, "book not found")
		}
		return apperr.Wrap(apperr.ErrPersistence, "delete book", err)
	}
	return nil
}

func (s *service) ByID(ctx context.Context, id string) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.ErrNotFound, "book not found")
		}
		return nil, apperr.Wrap(apperr.ErrPersistence, "get book", err)
	}
	return b, nil
}

func (s *service) TitlesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	titles, err := s.r.TitlesByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "lookup titles", err)
	}
	return titles, nil
}
