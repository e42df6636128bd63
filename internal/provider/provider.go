package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nft-recon/internal/domain"
)

// RawEvent is one provider-native history record. Only the provider's own
// normalizer interprets its fields.
type RawEvent map[string]any

// EventQuery selects the history of one token.
type EventQuery struct {
	Chain           string // provider-native chain identifier
	ContractAddress string
	TokenID         string
	EventType       domain.EventType
	Window          domain.TimeWindow
}

func (q EventQuery) validate() error {
	if q.Chain == "" || q.ContractAddress == "" || q.TokenID == "" {
		return fmt.Errorf("chain, contract address and token id are required")
	}
	return nil
}

// PageRecorder receives one observation per requested page.
type PageRecorder interface {
	ObservePage(provider string, err error)
}

type page struct {
	events     []RawEvent
	totalPages int  // 0 when the provider does not report it
	last       bool // set by cursor-paginated providers when no cursor follows
	next       string
}

type pageFetcher func(ctx context.Context, pageNum int, cursor string) (page, error)

// paginate walks pages sequentially from page 1. It stops on a short page, on
// the provider's reported last page, or after maxPages (0 = unlimited). A failed
// page ends pagination; the records gathered so far are returned with the error.
func paginate(ctx context.Context, pageSize, maxPages int, fetch pageFetcher) ([]RawEvent, error) {
	var all []RawEvent
	cursor := ""
	for pageNum := 1; ; pageNum++ {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		p, err := fetch(ctx, pageNum, cursor)
		if err != nil {
			return all, fmt.Errorf("page %d: %w", pageNum, err)
		}
		all = append(all, p.events...)

		switch {
		case len(p.events) < pageSize:
			return all, nil
		case p.totalPages > 0 && pageNum >= p.totalPages:
			return all, nil
		case p.last:
			return all, nil
		case maxPages > 0 && pageNum >= maxPages:
			return all, nil
		}
		cursor = p.next
	}
}

// getJSON performs a single GET and decodes the body into out, keeping JSON
// numbers as json.Number so large integer amounts are not rounded.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError is returned for any non-200 provider response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
