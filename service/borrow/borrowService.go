package borrowsvc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/azur-14/bookworm/model"
	"github.com/azur-14/bookworm/repository/bookclient"
	"github.com/azur-14/bookworm/util/apperr"
	"github.com/azur-14/bookworm/util/saga"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repo interface {
	Insert(ctx context.Context, req model.BorrowRequest) error
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (*model.BorrowRequest, error)
	BindCopy(ctx context.Context, id, copyID string) error
	SetStatus(ctx context.Context, id string, status model.BorrowStatus) error
	ExistsActive(ctx context.Context, userID, bookID string) (bool, error)
	ListAll(ctx context.Context) ([]model.BorrowRequest, error)
	ListByUser(ctx context.Context, userID string) ([]model.BorrowRequest, error)
	ListStuckPending(ctx context.Context, olderThan time.Time) ([]model.BorrowRequest, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, requestID string, kind model.RequestKind, oldStatus, newStatus, changedBy, reason string) error
}

type UserLookup interface {
	EmailsByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type CreateReq struct {
	UserID      string
	BookID      string
	RequestDate *time.Time
	ReceiveDate *time.Time
	DueDate     *time.Time
}

type Created struct {
	Request model.BorrowRequest
	Copy    bookclient.ClaimedCopy
}

// Enriched carries a request plus the collaborator-resolved display
// fields; both fall back to the raw id when lookup has no answer.
type Enriched struct {
	model.BorrowRequest
	UserEmail string `json:"user_email"`
	BookTitle string `json:"book_title"`
}

type Service interface {
	// Create persists a pending request, claims a copy from the Book
	// service and binds it. On claim failure the request is rolled back
	// and NotFound propagates.
	Create(ctx context.Context, req CreateReq) (*Created, error)

	// UpdateStatus moves the request through
	// pending → approved → cancelled/rejected. Termination by
	// cancellation or rejection releases the bound copy (best effort).
	// A history entry is appended only after the status write succeeds.
	UpdateStatus(ctx context.Context, id string, newStatus model.BorrowStatus, changedBy, reason string) error

	// AlreadyBorrowed is the per-title duplicate guard: true while the
	// user has a pending or approved request for the book.
	AlreadyBorrowed(ctx context.Context, userID, bookID string) (bool, error)

	ListAll(ctx context.Context) ([]Enriched, error)
	ListByUser(ctx context.Context, userID string) ([]model.BorrowRequest, error)
	ListStuck(ctx context.Context, olderThan time.Duration) ([]model.BorrowRequest, error)
}

type service struct {
	r       Repo
	books   bookclient.Repo
	users   UserLookup
	history HistoryRecorder
	log     *slog.Logger
}

func New(r Repo, books bookclient.Repo, users UserLookup, history HistoryRecorder, log *slog.Logger) Service {
	return &service{r: r, books: books, users: users, history: history, log: log}
}

func (s *service) Create(ctx context.Context, req CreateReq) (*Created, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.BookID) == "" {
		return nil, apperr.New(apperr.ErrValidation, "user_id and book_id are required")
	}

	dup, err := s.r.ExistsActive(ctx, req.UserID, req.BookID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "duplicate check", err)
	}
	if dup {
		return nil, apperr.New(apperr.ErrConflict, "user already has an open request for this book")
	}

	requestDate := time.Now().UTC()
	if req.RequestDate != nil {
		requestDate = req.RequestDate.UTC()
	}
	request := model.BorrowRequest{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		BookID:      req.BookID,
		BookCopyID:  nil,
		Status:      model.BorrowPending,
		RequestDate: requestDate,
		ReceiveDate: req.ReceiveDate,
		DueDate:     req.DueDate,
	}

	var claimed *bookclient.ClaimedCopy
	steps := []saga.Step{
		{
			Name: "persist pending request",
			Run: func(ctx context.Context) error {
				if err := s.r.Insert(ctx, request); err != nil {
					return apperr.Wrap(apperr.ErrPersistence, "insert borrow request", err)
				}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.r.Delete(ctx, request.ID)
			},
		},
		{
			Name: "claim copy",
			Run: func(ctx context.Context) error {
				c, err := s.books.ClaimCopy(ctx, request.BookID)
				if err != nil {
					return err
				}
				claimed = c
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.books.ReleaseCopy(ctx, claimed.ID)
			},
		},
		{
			Name: "bind copy",
			Run: func(ctx context.Context) error {
				if err := s.r.BindCopy(ctx, request.ID, claimed.ID); err != nil {
					return apperr.Wrap(apperr.ErrPersistence, "bind copy", err)
				}
				request.BookCopyID = &claimed.ID
				return nil
			},
		},
	}

	if err := saga.New(s.log).Execute(ctx, steps); err != nil {
		return nil, err
	}
	return &Created{Request: request, Copy: *claimed}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, newStatus model.BorrowStatus, changedBy, reason string) error {
	switch newStatus {
	case model.BorrowApproved, model.BorrowRejected, model.BorrowCancelled:
	default:
		return apperr.New(apperr.ErrValidation, "invalid target status")
	}

	request, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.ErrNotFound, "borrow request not found")
		}
		return apperr.Wrap(apperr.ErrPersistence, "load borrow request", err)
	}
	if request.Status == model.BorrowRejected || request.Status == model.BorrowCancelled {
		return apperr.New(apperr.ErrConflict, "request already terminated")
	}

	// Both cancellation and rejection free the copy. Release failure is
	// an inconsistency to reconcile, not a reason to block the write.
	if (newStatus == model.BorrowCancelled || newStatus == model.BorrowRejected) &&
		request.BookCopyID != nil {
		if err := s.books.ReleaseCopy(ctx, *request.BookCopyID); err != nil {
			s.log.Error("copy release failed, continuing status update",
				"request_id", id, "copy_id", *request.BookCopyID, "err", err)
		}
	}

	if err := s.r.SetStatus(ctx, id, newStatus); err != nil {
		return apperr.Wrap(apperr.ErrPersistence, "update borrow status", err)
	}

	return s.history.Record(ctx, id, model.KindBorrow,
		string(request.Status), string(newStatus), changedBy, reason)
}

func (s *service) AlreadyBorrowed(ctx context.Context, userID, bookID string) (bool, error) {
	ok, err := s.r.ExistsActive(ctx, userID, bookID)
	if err != nil {
		return false, apperr.Wrap(apperr.ErrPersistence, "duplicate check", err)
	}
	return ok, nil
}

func (s *service) ListAll(ctx context.Context) ([]Enriched, error) {
	requests, err := s.r.ListAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list borrow requests", err)
	}

	userIDs := distinct(requests, func(r model.BorrowRequest) string { return r.UserID })
	bookIDs := distinct(requests, func(r model.BorrowRequest) string { return r.BookID })

	emails := s.lookupEmails(ctx, userIDs)
	titles := s.lookupTitles(ctx, bookIDs)

	out := make([]Enriched, 0, len(requests))
	for _, r := range requests {
		e := Enriched{BorrowRequest: r, UserEmail: r.UserID, BookTitle: r.BookID}
		if email, ok := emails[r.UserID]; ok && email != "" {
			e.UserEmail = email
		}
		if title, ok := titles[r.BookID]; ok && title != "" {
			e.BookTitle = title
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]model.BorrowRequest, error) {
	requests, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list borrow requests", err)
	}
	return requests, nil
}

func (s *service) ListStuck(ctx context.Context, olderThan time.Duration) ([]model.BorrowRequest, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	requests, err := s.r.ListStuckPending(ctx, cutoff)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list stuck requests", err)
	}
	return requests, nil
}

func (s *service) lookupEmails(ctx context.Context, ids []string) map[string]string {
	if len(ids) == 0 {
		return nil
	}
	emails, err := s.users.EmailsByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("email enrichment failed, falling back to raw ids", "err", err)
		return nil
	}
	return emails
}

func (s *service) lookupTitles(ctx context.Context, ids []string) map[string]string {
	if len(ids) == 0 {
		return nil
	}
	titles, err := s.books.TitlesByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("title enrichment failed, falling back to raw ids", "err", err)
		return nil
	}
	return titles
}

func distinct(requests []model.BorrowRequest, key func(model.BorrowRequest) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range requests {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
