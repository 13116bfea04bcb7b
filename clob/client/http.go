package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const maxRawBodyChars = 500

// transport wraps a resty client pinned to the CLOB host. Proxy settings
// come from the standard environment variables.
type transport struct {
	rc *resty.Client
}

func newTransport(host string) *transport {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(host, "/")).
		SetTimeout(60 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == http.StatusTooManyRequests {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if d, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return d, nil
					}
				}
				return 10 * time.Second, nil
			}
			return 0, nil
		})

	return &transport{rc: rc}
}

type requestOptions struct {
	Headers map[string]string
	Params  map[string]string
	// Body is the exact JSON string sent on the wire. It must match the
	// bytes the L2 signature was computed over.
	Body *string
}

func (t *transport) do(ctx context.Context, method, endpoint string, opt *requestOptions, out any) (*resty.Response, error) {
	r := t.rc.R().SetContext(ctx)
	r.SetHeader("Accept", "application/json")
	r.SetHeader("User-Agent", "@polymarket/go-clob-client")

	if opt != nil {
		for k, v := range opt.Headers {
			r.SetHeader(k, v)
		}
		if opt.Params != nil {
			r.SetQueryParams(opt.Params)
		}
		if opt.Body != nil {
			r.SetHeader("Content-Type", "application/json")
			r.SetBody(*opt.Body)
		}
	}

	var resp *resty.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = r.Get(endpoint)
	case http.MethodPost:
		resp, err = r.Post(endpoint)
	case http.MethodDelete:
		resp, err = r.Delete(endpoint)
	default:
		return nil, errors.Errorf("unsupported method: %s", method)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, endpoint)
	}
	if !resp.IsSuccess() {
		return resp, errors.Errorf("%s %s: HTTP %d: %s", method, endpoint, resp.StatusCode(), truncateBody(resp.Body()))
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return resp, errors.Wrapf(err, "decode %s %s response", method, endpoint)
		}
	}
	return resp, nil
}

// truncateBody caps a raw response body so it can be embedded in error
// messages without flooding logs.
func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxRawBodyChars {
		return fmt.Sprintf("%s... (%d bytes total)", s[:maxRawBodyChars], len(b))
	}
	return s
}
