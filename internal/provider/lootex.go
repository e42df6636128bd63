package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nft-recon/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	lootexBaseURL         = "https://v3-api.lootex.io/api/v3"
	defaultLootexPageSize = 30
	defaultLootexPlatform = 1
)

// LootexProvider pages through the Lootex order history feed. The feed mixes
// listings, cancellations and sales; category selection happens in the normalizer.
type LootexProvider struct {
	client       *http.Client
	baseURL      string
	tracer       trace.Tracer
	pageSize     int
	maxPages     int
	platformType int
	recorder     PageRecorder
}

type LootexOptions struct {
	BaseURL      string
	PageSize     int
	MaxPages     int
	PlatformType int
	Timeout      time.Duration
	Recorder     PageRecorder
}

func NewLootexProvider(tracer trace.Tracer, opts LootexOptions) *LootexProvider {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = lootexBaseURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultLootexPageSize
	}
	if opts.PlatformType <= 0 {
		opts.PlatformType = defaultLootexPlatform
	}
	return &LootexProvider{
		client:       newHTTPClient(opts.Timeout),
		baseURL:      strings.TrimRight(baseURL, "/"),
		tracer:       tracer,
		pageSize:     opts.PageSize,
		maxPages:     opts.MaxPages,
		platformType: opts.PlatformType,
		recorder:     opts.Recorder,
	}
}

func (p *LootexProvider) Name() string { return domain.ProviderLootex }

// FetchEvents returns every history record for the token. q.EventType is
// ignored because the feed is not filterable by category. On a failed page the
// records fetched before it are returned together with the error.
func (p *LootexProvider) FetchEvents(ctx context.Context, q EventQuery) ([]RawEvent, error) {
	ctx, span := p.tracer.Start(ctx, "lootex.fetch-events")
	defer span.End()
	span.SetAttributes(
		attribute.String("chain_id", q.Chain),
		attribute.String("contract", q.ContractAddress),
		attribute.String("token_id", q.TokenID),
	)

	if err := q.validate(); err != nil {
		return nil, err
	}

	events, err := paginate(ctx, p.pageSize, p.maxPages, func(ctx context.Context, pageNum int, _ string) (page, error) {
		return p.fetchPage(ctx, q, pageNum)
	})
	span.SetAttributes(attribute.Int("events", len(events)))
	if err != nil {
		span.RecordError(err)
		return events, fmt.Errorf("lootex history: %w", err)
	}
	return events, nil
}

func (p *LootexProvider) fetchPage(ctx context.Context, q EventQuery, pageNum int) (page, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(p.pageSize))
	params.Set("chainId", q.Chain)
	params.Set("contractAddress", q.ContractAddress)
	params.Set("tokenId", q.TokenID)
	params.Set("page", strconv.Itoa(pageNum))
	params.Set("platformType", strconv.Itoa(p.platformType))
	if q.Window.From != nil {
		params.Set("startTime", q.Window.From.UTC().Format(time.RFC3339))
	}
	if q.Window.To != nil {
		params.Set("endTime", q.Window.To.UTC().Format(time.RFC3339))
	}

	var payload struct {
		OrdersHistory []RawEvent `json:"ordersHistory"`
		Pagination    struct {
			Page      int `json:"page"`
			TotalPage int `json:"totalPage"`
		} `json:"pagination"`
	}
	err := getJSON(ctx, p.client, p.baseURL+"/orders/history?"+params.Encode(), map[string]string{
		"Content-Type": "application/json",
	}, &payload)
	if p.recorder != nil {
		p.recorder.ObservePage(domain.ProviderLootex, err)
	}
	if err != nil {
		return page{}, err
	}

	return page{
		events:     payload.OrdersHistory,
		totalPages: payload.Pagination.TotalPage,
	}, nil
}
