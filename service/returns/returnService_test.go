package returnsvc_test

import (
	"context"
	"testing"

	"github.com/azur-14/bookworm/model"
	returnrepo "github.com/azur-14/bookworm/repository/returnreq"
	returnsvc "github.com/azur-14/bookworm/service/returns"
	"github.com/azur-14/bookworm/util/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

type repoMock struct {
	insertFn          func(ctx context.Context, req model.ReturnRequest) error
	byIDFn            func(ctx context.Context, id string) (*model.ReturnRequest, error)
	byBorrowIDFn      func(ctx context.Context, borrowID string) (*model.ReturnRequest, error)
	updateFn          func(ctx context.Context, id string, p returnrepo.ReturnPatch) error
	listByBorrowIDsFn func(ctx context.Context, borrowIDs []string) ([]model.ReturnRequest, error)
}

func (m *repoMock) Insert(ctx context.Context, req model.ReturnRequest) error {
	return m.insertFn(ctx, req)
}
func (m *repoMock) ByID(ctx context.Context, id string) (*model.ReturnRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByBorrowID(ctx context.Context, borrowID string) (*model.ReturnRequest, error) {
	return m.byBorrowIDFn(ctx, borrowID)
}
func (m *repoMock) Update(ctx context.Context, id string, p returnrepo.ReturnPatch) error {
	return m.updateFn(ctx, id, p)
}
func (m *repoMock) ListByBorrowIDs(ctx context.Context, borrowIDs []string) ([]model.ReturnRequest, error) {
	return m.listByBorrowIDsFn(ctx, borrowIDs)
}

type borrowIDsMock struct {
	listFn func(ctx context.Context, userID string) ([]string, error)
}

func (m *borrowIDsMock) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return m.listFn(ctx, userID)
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

func TestCreate_OpensProcessingRequest(t *testing.T) {
	var inserted model.ReturnRequest
	repo := &repoMock{
		byBorrowIDFn: func(ctx context.Context, borrowID string) (*model.ReturnRequest, error) {
			return nil, mongo.ErrNoDocuments
		},
		insertFn: func(ctx context.Context, req model.ReturnRequest) error {
			inserted = req
			return nil
		},
	}
	svc := returnsvc.New(repo, &borrowIDsMock{}, &historyMock{})

	out, err := svc.Create(context.Background(), "br1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted.Status != model.ReturnProcessing {
		t.Errorf("expected processing status, got %s", inserted.Status)
	}
	if inserted.BorrowRequestID != "br1" {
		t.Errorf("expected borrow link br1, got %s", inserted.BorrowRequestID)
	}
	if out.ID == "" || inserted.CreatedAt.IsZero() {
		t.Error("expected generated id and created_at stamp")
	}
}

func TestCreate_DuplicatePerBorrow(t *testing.T) {
	repo := &repoMock{
		byBorrowIDFn: func(ctx context.Context, borrowID string) (*model.ReturnRequest, error) {
			return &model.ReturnRequest{ID: "ret1", BorrowRequestID: borrowID}, nil
		},
	}
	svc := returnsvc.New(repo, &borrowIDsMock{}, &historyMock{})

	_, err := svc.Create(context.Background(), "br1")
	if apperr.Code(err) != apperr.ErrConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestUpdateStatus_StampsReturnDateAndRecordsHistory(t *testing.T) {
	var patch returnrepo.ReturnPatch
	repo := &repoMock{
		byIDFn: func(ctx context.Context, id string) (*model.ReturnRequest, error) {
			return &model.ReturnRequest{ID: id, Status: model.ReturnProcessing}, nil
		},
		updateFn: func(ctx context.Context, id string, p returnrepo.ReturnPatch) error {
			patch = p
			return nil
		},
	}
	hist := &historyMock{}
	svc := returnsvc.New(repo, &borrowIDsMock{}, hist)

	cond := "minor shelf wear"
	err := svc.UpdateStatus(context.Background(), "ret1", returnsvc.UpdateReq{
		Status:    model.ReturnCompleted,
		ChangedBy: "admin-1",
		Condition: &cond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patch.ReturnDate.IsZero() {
		t.Error("expected return date stamp")
	}
	if patch.Condition == nil || *patch.Condition != cond {
		t.Errorf("expected condition %q, got %v", cond, patch.Condition)
	}
	if hist.calls != 1 || hist.requestID != "ret1" || hist.kind != model.KindReturn {
		t.Errorf("expected history keyed by return id, got %+v", hist)
	}
	if hist.oldStatus != "processing" || hist.newStatus != "completed" {
		t.Errorf("expected processing→completed trail, got %s→%s", hist.oldStatus, hist.newStatus)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := returnsvc.New(&repoMock{}, &borrowIDsMock{}, &historyMock{})
	err := svc.UpdateStatus(context.Background(), "ret1", returnsvc.UpdateReq{Status: "misplaced"})
	if apperr.Code(err) != apperr.ErrValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateStatus_MissingRequest(t *testing.T) {
	repo := &repoMock{
		byIDFn: func(ctx context.Context, id string) (*model.ReturnRequest, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := returnsvc.New(repo, &borrowIDsMock{}, &historyMock{})
	err := svc.UpdateStatus(context.Background(), "nope", returnsvc.UpdateReq{Status: model.ReturnOverdue})
	if apperr.Code(err) != apperr.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListByUser_NoBorrowsShortCircuits(t *testing.T) {
	borrows := &borrowIDsMock{listFn: func(ctx context.Context, userID string) ([]string, error) {
		return nil, nil
	}}
	repo := &repoMock{listByBorrowIDsFn: func(ctx context.Context, borrowIDs []string) ([]model.ReturnRequest, error) {
		t.Fatal("repo must not be queried when the user has no borrows")
		return nil, nil
	}}
	svc := returnsvc.New(repo, borrows, &historyMock{})

	out, err := svc.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %v", out)
	}
}

func TestListByUser_QueriesByBorrowIDs(t *testing.T) {
	borrows := &borrowIDsMock{listFn: func(ctx context.Context, userID string) ([]string, error) {
		return []string{"br1", "br2"}, nil
	}}
	repo := &repoMock{listByBorrowIDsFn: func(ctx context.Context, borrowIDs []string) ([]model.ReturnRequest, error) {
		if len(borrowIDs) != 2 {
			t.Errorf("expected 2 borrow ids, got %v", borrowIDs)
		}
		return []model.ReturnRequest{{ID: "ret1", BorrowRequestID: "br1"}}, nil
	}}
	svc := returnsvc.New(repo, borrows, &historyMock{})

	out, err := svc.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "ret1" {
		t.Errorf("unexpected result: %v", out)
	}
}
