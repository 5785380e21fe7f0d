package historysvc

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
	Append(ctx context.Context, h model.StatusHistory) error
	ByRefs(ctx context.Context, refs []model.RequestRef) ([]model.StatusHistory, error)
}

// ReturnLinks resolves the return request derived from a borrow, if one
// exists. Implemented by the return-request repository.
type ReturnLinks interface {
	ByBorrowID(ctx context.Context, borrowID string) (*model.ReturnRequest, error)
}

type Service interface {
	Append(ctx context.Context, h model.StatusHistory) error

	// Record is the one-line form the other services use after a
	// successful status write.
	Record(ctx context.Context, requestID string, kind model.RequestKind, oldStatus, newStatus, changedBy, reason string) error

	// History returns the merged trail for a borrow request: its own
	// entries plus those of its derived return request, newest first.
	History(ctx context.Context, requestID string) ([]model.StatusHistory, error)
}

type service struct {
	r     Repo
	links ReturnLinks
}

func New(r Repo, links ReturnLinks) Service { return &service{r: r, links: links} }

func (s *service) Append(ctx context.Context, h model.StatusHistory) error {
	if strings.TrimSpace(h.RequestID) == "" || h.RequestType == "" ||
		h.OldStatus == "" || h.NewStatus == "" || h.ChangedBy == "" {
		return apperr.New(apperr.ErrValidation, "missing required history fields")
	}
	if h.ChangeTime.IsZero() {
		h.ChangeTime = time.Now().UTC()
	}
	if err := s.r.Append(ctx, h); err != nil {
		return apperr.Wrap(apperr.ErrPersistence, "append status history", err)
	}
	return nil
}

func (s *service) Record(ctx context.Context, requestID string, kind model.RequestKind, oldStatus, newStatus, changedBy, reason string) error {
	return s.Append(ctx, model.StatusHistory{
		RequestID:   requestID,
		RequestType: kind,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedBy:   changedBy,
		Reason:      reason,
		ChangeTime:  time.Now().UTC(),
	})
}

func (s *service) History(ctx context.Context, requestID string) ([]model.StatusHistory, error) {
	refs, err := s.resolveRefs(ctx, requestID)
	if err != nil {
		return nil, err
	}
	out, err := s.r.ByRefs(ctx, refs)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "query status history", err)
	}
	return out, nil
}

// resolveRefs turns a raw id into tagged refs exactly once: the id
// itself as a borrow ref, plus the linked return request's id when one
// exists. Untyped secondary lookups stop here.
func (s *service) resolveRefs(ctx context.Context, requestID string) ([]model.RequestRef, error) {
	refs := []model.RequestRef{{Kind: model.KindBorrow, ID: requestID}}
	ret, err := s.links.ByBorrowID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return refs, nil
		}
		return nil, apperr.Wrap(apperr.ErrPersistence, "resolve return link", err)
	}
	return append(refs, model.RequestRef{Kind: model.KindReturn, ID: ret.ID}), nil
}
