package roombookingsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/azur-14/bookworm/model"
	roombookingsvc "github.com/azur-14/bookworm/service/roombooking"
	"github.com/azur-14/bookworm/util/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

type repoMock struct {
	insertBatchFn func(ctx context.Context, reqs []model.RoomBookingRequest) error
	byIDFn        func(ctx context.Context, id string) (*model.RoomBookingRequest, error)
	setStatusFn   func(ctx context.Context, id string, status model.RoomBookingStatus) error
	listByUserFn  func(ctx context.Context, userID string) ([]model.RoomBookingRequest, error)
	countFn       func(ctx context.Context) (int64, error)
}

func (m *repoMock) InsertBatch(ctx context.Context, reqs []model.RoomBookingRequest) error {
	return m.insertBatchFn(ctx, reqs)
}
func (m *repoMock) ByID(ctx context.Context, id string) (*model.RoomBookingRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) SetStatus(ctx context.Context, id string, status model.RoomBookingStatus) error {
	return m.setStatusFn(ctx, id, status)
}
func (m *repoMock) ListByUser(ctx context.Context, userID string) ([]model.RoomBookingRequest, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *repoMock) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

type historyMock struct {
	requestID string
	kind      model.RequestKind
	oldStatus string
	newStatus string
	calls     int
}

func (m *historyMock) Record(ctx context.Context, requestID string, kind model.RequestKind, oldStatus, newStatus, changedBy, reason string) error {
	m.requestID = requestID
	m.kind = kind
	m.oldStatus = oldStatus
	m.newStatus = newStatus
	m.calls++
	return nil
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 14, hour, 0, 0, 0, time.UTC)
}

func TestMergeSlots_CollapsesContiguousRuns(t *testing.T) {
	// 9-10 and 10-11 touch; 13-14 stands alone.
	slots := []roombookingsvc.Slot{
		{Start: at(13), End: at(14)},
		{Start: at(9), End: at(10)},
		{Start: at(10), End: at(11)},
	}
	windows := roombookingsvc.MergeSlots(slots)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d: %v", len(windows), windows)
	}
	if !windows[0].Start.Equal(at(9)) || !windows[0].End.Equal(at(11)) {
		t.Errorf("expected merged 9-11 window, got %v", windows[0])
	}
	if !windows[1].Start.Equal(at(13)) || !windows[1].End.Equal(at(14)) {
		t.Errorf("expected standalone 13-14 window, got %v", windows[1])
	}
}

func TestMergeSlots_EmptyInput(t *testing.T) {
	if got := roombookingsvc.MergeSlots(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestMergeSlots_GapStaysSeparate(t *testing.T) {
	slots := []roombookingsvc.Slot{
		{Start: at(9), End: at(10)},
		{Start: at(11), End: at(12)},
	}
	if got := roombookingsvc.MergeSlots(slots); len(got) != 2 {
		t.Errorf("expected 2 windows across the gap, got %v", got)
	}
}

func TestCreate_OneRequestPerWindow(t *testing.T) {
	var inserted []model.RoomBookingRequest
	repo := &repoMock{
		countFn: func(ctx context.Context) (int64, error) { return 7, nil },
		insertBatchFn: func(ctx context.Context, reqs []model.RoomBookingRequest) error {
			inserted = reqs
			return nil
		},
	}
	svc := roombookingsvc.New(repo, &historyMock{})

	out, err := svc.Create(context.Background(), roombookingsvc.CreateReq{
		UserID: "u1",
		RoomID: "room-a",
		Slots: []roombookingsvc.Slot{
			{Start: at(9), End: at(10)},
			{Start: at(10), End: at(11)},
			{Start: at(13), End: at(14)},
		},
		Purpose: "study group",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || len(inserted) != 2 {
		t.Fatalf("expected 2 persisted windows, got %d", len(inserted))
	}
	if inserted[0].ID != "rb008-room-a" || inserted[1].ID != "rb009-room-a" {
		t.Errorf("expected count-derived ids, got %s and %s", inserted[0].ID, inserted[1].ID)
	}
	for _, r := range inserted {
		if r.Status != model.RoomPending {
			t.Errorf("expected pending status, got %s", r.Status)
		}
		if r.RequestTime.IsZero() {
			t.Error("expected request time stamp")
		}
	}
	if !inserted[0].EndTime.Equal(at(11)) {
		t.Errorf("expected merged window ending at 11, got %v", inserted[0].EndTime)
	}
}

func TestCreate_RejectsEmptySlots(t *testing.T) {
	svc := roombookingsvc.New(&repoMock{}, &historyMock{})
	_, err := svc.Create(context.Background(), roombookingsvc.CreateReq{UserID: "u1", RoomID: "room-a"})
	if apperr.Code(err) != apperr.ErrValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreate_RejectsInvertedSlot(t *testing.T) {
	svc := roombookingsvc.New(&repoMock{}, &historyMock{})
	_, err := svc.Create(context.Background(), roombookingsvc.CreateReq{
		UserID: "u1",
		RoomID: "room-a",
		Slots:  []roombookingsvc.Slot{{Start: at(11), End: at(9)}},
	})
	if apperr.Code(err) != apperr.ErrValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateStatus_RecordsHistory(t *testing.T) {
	var written model.RoomBookingStatus
	repo := &repoMock{
		byIDFn: func(ctx context.Context, id string) (*model.RoomBookingRequest, error) {
			return &model.RoomBookingRequest{ID: id, Status: model.RoomPending}, nil
		},
		setStatusFn: func(ctx context.Context, id string, status model.RoomBookingStatus) error {
			written = status
			return nil
		},
	}
	hist := &historyMock{}
	svc := roombookingsvc.New(repo, hist)

	err := svc.UpdateStatus(context.Background(), "rb001-room-a", model.RoomApproved, "admin-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != model.RoomApproved {
		t.Errorf("expected approved write, got %s", written)
	}
	if hist.calls != 1 || hist.kind != model.KindRoom {
		t.Errorf("expected one room history entry, got %+v", hist)
	}
	if hist.oldStatus != "pending" || hist.newStatus != "approved" {
		t.Errorf("expected pending→approved trail, got %s→%s", hist.oldStatus, hist.newStatus)
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := roombookingsvc.New(&repoMock{}, &historyMock{})
	err := svc.UpdateStatus(context.Background(), "rb001-room-a", "parked", "admin-1", "")
	if apperr.Code(err) != apperr.ErrValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateStatus_MissingBooking(t *testing.T) {
	repo := &repoMock{
		byIDFn: func(ctx context.Context, id string) (*model.RoomBookingRequest, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := roombookingsvc.New(repo, &historyMock{})
	err := svc.UpdateStatus(context.Background(), "nope", model.RoomApproved, "admin-1", "")
	if apperr.Code(err) != apperr.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
