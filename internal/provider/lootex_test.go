package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"nft-recon/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type countingRecorder struct {
	ok, failed int
}

func (r *countingRecorder) ObservePage(provider string, err error) {
	if err != nil {
		r.failed++
		return
	}
	r.ok++
}

func lootexPage(n, pageNum, totalPage int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf(`{"category":"sale","txHash":"0x%d%d"}`, pageNum, i)
	}
	return fmt.Sprintf(`{"ordersHistory":[%s],"pagination":{"page":%d,"totalPage":%d}}`,
		strings.Join(rows, ","), pageNum, totalPage)
}

func TestLootexFetchEventsBuildsQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	p := NewLootexProvider(trace.NewNoopTracerProvider().Tracer("test"), LootexOptions{BaseURL: "http://example/api/v3", PageSize: 30})
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v3/orders/history" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		q := req.URL.Query()
		want := map[string]string{
			"limit":           "30",
			"chainId":         "137",
			"contractAddress": "0xabc",
			"tokenId":         "7",
			"page":            "1",
			"platformType":    "1",
			"startTime":       "2024-01-01T00:00:00Z",
			"endTime":         "2024-02-01T00:00:00Z",
		}
		for k, v := range want {
			if q.Get(k) != v {
				t.Fatalf("param %s = %q, want %q", k, q.Get(k), v)
			}
		}
		return jsonResponse(http.StatusOK, lootexPage(2, 1, 1)), nil
	})}

	events, err := p.FetchEvents(context.Background(), EventQuery{
		Chain:           "137",
		ContractAddress: "0xabc",
		TokenID:         "7",
		Window:          domain.TimeWindow{From: &from, To: &to},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

func TestLootexFetchEventsPagesUntilTotalPage(t *testing.T) {
	rec := &countingRecorder{}
	p := NewLootexProvider(trace.NewNoopTracerProvider().Tracer("test"), LootexOptions{BaseURL: "http://example", PageSize: 2, Recorder: rec})
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		pageNum, _ := strconv.Atoi(req.URL.Query().Get("page"))
		return jsonResponse(http.StatusOK, lootexPage(2, pageNum, 3)), nil
	})}

	events, err := p.FetchEvents(context.Background(), EventQuery{Chain: "1", ContractAddress: "0xabc", TokenID: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("expected 6 events over 3 pages, got %d", len(events))
	}
	if rec.ok != 3 || rec.failed != 0 {
		t.Fatalf("unexpected page observations: %+v", rec)
	}
	if events[5]["txHash"] != "0x31" {
		t.Fatalf("events out of order: %v", events[5])
	}
}

func TestLootexFetchEventsKeepsNumbersExact(t *testing.T) {
	p := NewLootexProvider(trace.NewNoopTracerProvider().Tracer("test"), LootexOptions{BaseURL: "http://example"})
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"ordersHistory":[{"category":"list","amount":12345678901234567890}]}`), nil
	})}

	events, err := p.FetchEvents(context.Background(), EventQuery{Chain: "1", ContractAddress: "0xabc", TokenID: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := events[0]["amount"].(json.Number)
	if !ok || n.String() != "12345678901234567890" {
		t.Fatalf("expected exact json.Number, got %#v", events[0]["amount"])
	}
}

func TestLootexFetchEventsReturnsPartialOnFailure(t *testing.T) {
	rec := &countingRecorder{}
	p := NewLootexProvider(trace.NewNoopTracerProvider().Tracer("test"), LootexOptions{BaseURL: "http://example", PageSize: 2, Recorder: rec})
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("page") == "2" {
			return jsonResponse(http.StatusInternalServerError, "oops"), nil
		}
		return jsonResponse(http.StatusOK, lootexPage(2, 1, 5)), nil
	})}

	events, err := p.FetchEvents(context.Background(), EventQuery{Chain: "1", ContractAddress: "0xabc", TokenID: "1"})
	if err == nil {
		t.Fatal("expected error for failed page")
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events from the first page, got %d", len(events))
	}
	if rec.ok != 1 || rec.failed != 1 {
		t.Fatalf("unexpected page observations: %+v", rec)
	}
}

func TestLootexFetchEventsRequiresIdentifiers(t *testing.T) {
	p := NewLootexProvider(trace.NewNoopTracerProvider().Tracer("test"), LootexOptions{})
	if _, err := p.FetchEvents(context.Background(), EventQuery{Chain: "1"}); err == nil {
		t.Fatal("expected validation error")
	}
}
