// repository/userclient/userClient.go
package userclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/azur-14/bookworm/util/apperr"
	"github.com/azur-14/bookworm/util/httpx"

	"github.com/go-resty/resty/v2"
)

// The User service is an external collaborator; only the lookup needed
// for request enrichment is modeled.
type Repo interface {
	EmailsByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type httpRepo struct{ client *resty.Client }

func NewHTTP(baseURL string) Repo {
	return &httpRepo{client: httpx.NewClient(baseURL)}
}

func (r *httpRepo) EmailsByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	var out struct {
		Emails map[string]string `json:"emails"`
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetResult(&out).
		Get("/api/users/emails")
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrDependency, "user service email lookup failed", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.ErrDependency,
			fmt.Sprintf("user service email lookup returned %s", resp.Status()))
	}
	return out.Emails, nil
}
