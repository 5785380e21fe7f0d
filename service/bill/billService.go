package billsvc

import (
	"context"
	"strings"
	"time"

	"github.com/azur-14/bookworm/model"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/google/uuid"
)

type Repo interface {
	Insert(ctx context.Context, b model.Bill) error
	ListAll(ctx context.Context) ([]model.Bill, error)
}

type CreateReq struct {
	RequestID      string
	Type           model.BillType
	OverdueDays    *int
	OverdueFee     *float64
	DamageFee      *float64
	TotalFee       float64
	AmountReceived float64
	Date           *time.Time
}

type Service interface {
	// Create settles a fee record for a closed borrow or room booking.
	// Change is derived from the amount received, never taken from the
	// caller.
	Create(ctx context.Context, req CreateReq) (*model.Bill, error)

	// ListAll returns every bill, newest settlement first.
	ListAll(ctx context.Context) ([]model.Bill, error)
}

type service struct {
	r Repo
}

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, req CreateReq) (*model.Bill, error) {
	if strings.TrimSpace(req.RequestID) == "" {
		return nil, apperr.New(apperr.ErrValidation, "request id is required")
	}
	if !model.ValidBillType(req.Type) {
		return nil, apperr.New(apperr.ErrValidation, "invalid bill type")
	}
	if req.TotalFee < 0 {
		return nil, apperr.New(apperr.ErrValidation, "total fee must not be negative")
	}
	if req.AmountReceived < req.TotalFee {
		return nil, apperr.New(apperr.ErrValidation, "amount received is less than the total fee")
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}
	b := model.Bill{
		ID:             uuid.NewString(),
		RequestID:      req.RequestID,
		Type:           req.Type,
		OverdueDays:    req.OverdueDays,
		OverdueFee:     req.OverdueFee,
		DamageFee:      req.DamageFee,
		TotalFee:       req.TotalFee,
		AmountReceived: req.AmountReceived,
		ChangeGiven:    req.AmountReceived - req.TotalFee,
		Date:           date,
		CreatedAt:      now,
	}
	if err := s.r.Insert(ctx, b); err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "insert bill", err)
	}
	return &b, nil
}

func (s *service) ListAll(ctx context.Context) ([]model.Bill, error) {
	out, err := s.r.ListAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list bills", err)
	}
	return out, nil
}
