// repository/bookclient/bookClient.go
package bookclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/azur-14/bookworm/model"
	"github.com/azur-14/bookworm/util/apperr"
	"github.com/azur-14/bookworm/util/httpx"

	"github.com/go-resty/resty/v2"
)

// ClaimedCopy is the slice of BookCopy the Book service hands back from
// a claim: identity plus current shelf placement.
type ClaimedCopy struct {
	ID      string `json:"id"`
	BookID  string `json:"book_id"`
	ShelfID *int64 `json:"shelf_id"`
	Status  string `json:"status"`
}

type Repo interface {
	// ClaimCopy asks the Book service to atomically claim one available
	// copy of the title. NotFound means the title has no free copy.
	ClaimCopy(ctx context.Context, bookID string) (*ClaimedCopy, error)

	// ReleaseCopy is the compensating call: puts the copy back to
	// available.
	ReleaseCopy(ctx context.Context, copyID string) error

	// TitlesByIDs resolves book ids to titles in one batched call.
	TitlesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type httpRepo struct{ client *resty.Client }

func NewHTTP(baseURL string) Repo {
	return &httpRepo{client: httpx.NewClient(baseURL)}
}

func (r *httpRepo) ClaimCopy(ctx context.Context, bookID string) (*ClaimedCopy, error) {
	var out struct {
		Success bool        `json:"success"`
		Copy    ClaimedCopy `json:"copy"`
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&out).
		Put("/api/bookcopies/borrow/" + bookID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrDependency, "book service claim call failed", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, apperr.New(apperr.ErrNotFound, "no available copy to assign")
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.ErrDependency,
			fmt.Sprintf("book service claim returned %s", resp.Status()))
	}
	if out.Copy.ID == "" {
		return nil, apperr.New(apperr.ErrDependency, "book service claim returned no copy")
	}
	return &out.Copy, nil
}

func (r *httpRepo) ReleaseCopy(ctx context.Context, copyID string) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"status": model.CopyAvailable}).
		Put("/api/bookcopies/" + copyID + "/status")
	if err != nil {
		return apperr.Wrap(apperr.ErrDependency, "book service release call failed", err)
	}
	if resp.IsError() {
		return apperr.New(apperr.ErrDependency,
			fmt.Sprintf("book service release returned %s", resp.Status()))
	}
	return nil
}

func (r *httpRepo) TitlesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	var out struct {
		Titles map[string]string `json:"titles"`
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetResult(&out).
		Get("/api/books/titles")
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrDependency, "book service title lookup failed", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.ErrDependency,
			fmt.Sprintf("book service title lookup returned %s", resp.Status()))
	}
	return out.Titles, nil
}
