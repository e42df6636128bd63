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
	openSeaBaseURL         = "https://api.opensea.io/api/v2"
	defaultOpenSeaPageSize = 50
	maxOpenSeaPageSize     = 50
)

// openSeaEventTypes maps a category to the event_type filter OpenSea expects.
var openSeaEventTypes = map[domain.EventType]string{
	domain.EventListing: "listing",
	domain.EventCancel:  "cancel",
	domain.EventSale:    "sale",
}

// OpenSeaProvider pages through the OpenSea NFT events endpoint. Each category
// is a separate query filtered server-side by event_type.
type OpenSeaProvider struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	tracer   trace.Tracer
	pageSize int
	maxPages int
	recorder PageRecorder
}

type OpenSeaOptions struct {
	BaseURL  string
	APIKey   string
	PageSize int
	MaxPages int
	Timeout  time.Duration
	Recorder PageRecorder
}

func NewOpenSeaProvider(tracer trace.Tracer, opts OpenSeaOptions) *OpenSeaProvider {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = openSeaBaseURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultOpenSeaPageSize
	}
	if opts.PageSize > maxOpenSeaPageSize {
		opts.PageSize = maxOpenSeaPageSize
	}
	return &OpenSeaProvider{
		client:   newHTTPClient(opts.Timeout),
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   strings.TrimSpace(opts.APIKey),
		tracer:   tracer,
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		recorder: opts.Recorder,
	}
}

func (p *OpenSeaProvider) Name() string { return domain.ProviderOpenSea }

// FetchEvents returns the token's events of q.EventType. The time window is
// sent as after/before epoch-second bounds. On a failed page the records
// fetched before it are returned together with the error.
func (p *OpenSeaProvider) FetchEvents(ctx context.Context, q EventQuery) ([]RawEvent, error) {
	ctx, span := p.tracer.Start(ctx, "opensea.fetch-events")
	defer span.End()
	span.SetAttributes(
		attribute.String("chain", q.Chain),
		attribute.String("contract", q.ContractAddress),
		attribute.String("token_id", q.TokenID),
		attribute.String("event_type", string(q.EventType)),
	)

	if err := q.validate(); err != nil {
		return nil, err
	}
	eventType, ok := openSeaEventTypes[q.EventType]
	if !ok {
		return nil, fmt.Errorf("unsupported event type: %q", q.EventType)
	}

	events, err := paginate(ctx, p.pageSize, p.maxPages, func(ctx context.Context, _ int, cursor string) (page, error) {
		return p.fetchPage(ctx, q, eventType, cursor)
	})
	span.SetAttributes(attribute.Int("events", len(events)))
	if err != nil {
		span.RecordError(err)
		return events, fmt.Errorf("opensea events: %w", err)
	}
	return events, nil
}

func (p *OpenSeaProvider) fetchPage(ctx context.Context, q EventQuery, eventType, cursor string) (page, error) {
	params := url.Values{}
	params.Set("event_type", eventType)
	params.Set("limit", strconv.Itoa(p.pageSize))
	if q.Window.From != nil {
		params.Set("after", strconv.FormatInt(q.Window.From.Unix(), 10))
	}
	if q.Window.To != nil {
		params.Set("before", strconv.FormatInt(q.Window.To.Unix(), 10))
	}
	if cursor != "" {
		params.Set("next", cursor)
	}

	u := fmt.Sprintf("%s/events/chain/%s/contract/%s/nfts/%s?%s",
		p.baseURL,
		url.PathEscape(q.Chain),
		url.PathEscape(q.ContractAddress),
		url.PathEscape(q.TokenID),
		params.Encode(),
	)

	headers := map[string]string{}
	if p.apiKey != "" {
		headers["X-API-KEY"] = p.apiKey
	}

	var payload struct {
		AssetEvents []RawEvent `json:"asset_events"`
		Next        string     `json:"next"`
	}
	err := getJSON(ctx, p.client, u, headers, &payload)
	if p.recorder != nil {
		p.recorder.ObservePage(domain.ProviderOpenSea, err)
	}
	if err != nil {
		return page{}, err
	}

	return page{
		events: payload.AssetEvents,
		next:   payload.Next,
		last:   payload.Next == "",
	}, nil
}
