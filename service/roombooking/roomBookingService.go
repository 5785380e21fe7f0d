package roombookingsvc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/azur-14/bookworm/model"
	"github.com/azur-14/bookworm/util/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

type Repo interface {
	InsertBatch(ctx context.Context, reqs []model.RoomBookingRequest) error
	ByID(ctx context.Context, id string) (*model.RoomBookingRequest, error)
	SetStatus(ctx context.Context, id string, status model.RoomBookingStatus) error
	ListByUser(ctx context.Context, userID string) ([]model.RoomBookingRequest, error)
	Count(ctx context.Context) (int64, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, requestID string, kind model.RequestKind, oldStatus, newStatus, changedBy, reason string) error
}

type Slot struct {
	Start time.Time
	End   time.Time
}

type CreateReq struct {
	UserID       string
	RoomID       string
	Slots        []Slot
	Purpose      string
	PricePerHour float64
}

type Service interface {
	// Create merges contiguous slots into windows and persists one
	// pending request per window.
	Create(ctx context.Context, req CreateReq) ([]model.RoomBookingRequest, error)

	UpdateStatus(ctx context.Context, id string, newStatus model.RoomBookingStatus, changedBy, reason string) error
	ListByUser(ctx context.Context, userID string) ([]model.RoomBookingRequest, error)
}

type service struct {
	r       Repo
	history HistoryRecorder
}

func New(r Repo, history HistoryRecorder) Service {
	return &service{r: r, history: history}
}

func (s *service) Create(ctx context.Context, req CreateReq) ([]model.RoomBookingRequest, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.RoomID) == "" {
		return nil, apperr.New(apperr.ErrValidation, "user_id and room_id are required")
	}
	if len(req.Slots) == 0 {
		return nil, apperr.New(apperr.ErrValidation, "at least one slot is required")
	}
	for _, sl := range req.Slots {
		if !sl.Start.Before(sl.End) {
			return nil, apperr.New(apperr.ErrValidation, "slot start must be before end")
		}
	}

	windows := MergeSlots(req.Slots)

	count, err := s.r.Count(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "count bookings", err)
	}

	now := time.Now().UTC()
	out := make([]model.RoomBookingRequest, 0, len(windows))
	for i, w := range windows {
		out = append(out, model.RoomBookingRequest{
			ID:           fmt.Sprintf("rb%03d-%s", count+int64(i)+1, req.RoomID),
			UserID:       req.UserID,
			RoomID:       req.RoomID,
			StartTime:    w.Start,
			EndTime:      w.End,
			Status:       model.RoomPending,
			Purpose:      req.Purpose,
			RequestTime:  now,
			PricePerHour: req.PricePerHour,
		})
	}
	if err := s.r.InsertBatch(ctx, out); err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "insert booking requests", err)
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, newStatus model.RoomBookingStatus, changedBy, reason string) error {
	if !model.ValidRoomBookingStatus(newStatus) {
		return apperr.New(apperr.ErrValidation, "invalid booking status")
	}
	current, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.ErrNotFound, "booking request not found")
		}
		return apperr.Wrap(apperr.ErrPersistence, "load booking request", err)
	}
	if err := s.r.SetStatus(ctx, id, newStatus); err != nil {
		return apperr.Wrap(apperr.ErrPersistence, "update booking status", err)
	}
	return s.history.Record(ctx, id, model.KindRoom,
		string(current.Status), string(newStatus), changedBy, reason)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]model.RoomBookingRequest, error) {
	out, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrPersistence, "list booking requests", err)
	}
	return out, nil
}

// MergeSlots sorts by start time and collapses runs of contiguous slots
// (one slot's end exactly equals the next slot's start) into single
// windows. Slots separated by any gap stay separate windows.
func MergeSlots(slots []Slot) []Slot {
	if len(slots) == 0 {
		return nil
	}
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := []Slot{sorted[0]}
	for _, sl := range sorted[1:] {
		last := &out[len(out)-1]
		if sl.Start.Equal(last.End) {
			last.End = sl.End
			continue
		}
		out = append(out, sl)
	}
	return out
}
