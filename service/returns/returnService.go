package returnsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/azur-14/bookworm/model"
	returnrepo "github.com/azur-14/bookworm/repository/returnreq"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repo interface {
	Insert(ctx context.Context, req model.ReturnRequest) error
	ByID(ctx context.Context, id string) (*model.ReturnRequest, error)
	ByBorrowID(ctx context.Context, borrowID string) (*model.ReturnRequest, error)
	Update(ctx context.Context, id string, p returnrepo.ReturnPatch) error
	ListByBorrowIDs(ctx context.Context, borrowIDs []string) ([]model.ReturnRequest, error)
}

type BorrowIDs interface {
	ListIDsByUser(ctx context.Context, userID string) ([]string, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, requestID string, kind model.RequestKind, oldStatus, newStatus, changedBy, reason string) error
}

type UpdateReq struct {
	Status      model.ReturnStatus
	ChangedBy   string
	Reason      string
	Condition   *string
	ReturnImage *string
}

type Service interface {
	// Create opens the return lifecycle for a borrow hand-off; one per
	// borrow request.
	Create(ctx context.Context, borrowRequestID string) (*model.ReturnRequest, error)

	// UpdateStatus mutates status/condition/evidence, stamps the return
	// date and appends history keyed by the return request's own id.
	UpdateStatus(ctx context.Context, id string, req UpdateReq) error

	ListByUser(ctx context.Context, userID string) ([]model.ReturnRequest, error)
}

type service struct {
	r       Repo
	borrows BorrowIDs
	history HistoryRecorder
}

func New(r Repo, borrows BorrowIDs, history HistoryRecorder) Service {
	return &service{r: r, borrows: borrows, history: history}
}

func (s *service) Create(ctx context.Context, borrowRequestID string) (*model.ReturnRequest, error) {
	if strings.TrimSpace(borrowRequestID) == "" {
		return nil, apperr.New(apperr.ErrValidation, "borrow_request_id is required")
	}
	if _, err := s.r.ByBorrowID(ctx, borrowRequestID); err == nil {
		return nil, apperr.New(apperr.ErrConflict, "return request already exists for this borrow")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Wrap(apperr.ErrPersistence, "check existing return", err)
	}

	req := model.ReturnRequest{
		ID:              uuid.NewString(),
		BorrowRequestID: borrowRequestID,
		Status:          model.ReturnProcessing,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.r.Insert(ctx, req); err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "insert return request", err)
	}
	return &req, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateReq) error {
	if !model.ValidReturnStatus(req.Status) {
		return apperr.New(apperr.ErrValidation, "invalid return status")
	}

	current, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.ErrNotFound, "return request not found")
		}
		return apperr.Wrap(apperr.ErrPersistence, "load return request", err)
	}

	patch := returnrepo.ReturnPatch{
		Status:      req.Status,
		Condition:   req.Condition,
		ReturnImage: req.ReturnImage,
		ReturnDate:  time.Now().UTC(),
	}
	if err := s.r.Update(ctx, id, patch); err != nil {
		return apperr.Wrap(apperr.ErrPersistence, "update return request", err)
	}

	// Keyed by the return request's own id, not the borrow id; the
	// ledger's merged lookup bridges the two.
	return s.history.Record(ctx, id, model.KindReturn,
		string(current.Status), string(req.Status), req.ChangedBy, req.Reason)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]model.ReturnRequest, error) {
	borrowIDs, err := s.borrows.ListIDsByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list user borrows", err)
	}
	if len(borrowIDs) == 0 {
		return nil, nil
	}
	out, err := s.r.ListByBorrowIDs(ctx, borrowIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list return requests", err)
	}
	return out, nil
}
