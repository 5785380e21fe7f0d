package httpx

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewClient builds the resty client used for every cross-service call.
// One shape for all collaborators: JSON in/out, short timeout, a couple
// of retries on transport errors.
func NewClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}
