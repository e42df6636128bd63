package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nft-recon/internal/domain"
	"nft-recon/internal/metrics"
	"nft-recon/internal/normalizer"
	"nft-recon/internal/provider"
	"nft-recon/internal/reconcile"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrInvalidRequest = errors.New("invalid reconcile request")

// EventFetcher pages through one provider's history for a token.
type EventFetcher interface {
	FetchEvents(ctx context.Context, q provider.EventQuery) ([]provider.RawEvent, error)
}

// EventNormalizer maps one provider's raw records of a category to events.
type EventNormalizer interface {
	Provider() string
	Normalize(raw []provider.RawEvent, eventType domain.EventType) normalizer.Result
}

// Source is a fetch/normalize pair for one provider.
type Source struct {
	Fetcher    EventFetcher
	Normalizer EventNormalizer
}

// Pipeline is the pair of sources reconciled for one category; Lootex is the
// left side and OpenSea the right.
type Pipeline struct {
	Lootex  Source
	OpenSea Source
}

// Request identifies the token and optional time window of a run.
type Request struct {
	Chain           string             `json:"chain"`
	ContractAddress string             `json:"contract_address"`
	TokenID         string             `json:"token_id"`
	Window          domain.TimeWindow  `json:"window"`
	EventTypes      []domain.EventType `json:"event_types,omitempty"`
}

func (r Request) validate() error {
	var missing []string
	if strings.TrimSpace(r.Chain) == "" {
		missing = append(missing, "chain")
	}
	if strings.TrimSpace(r.ContractAddress) == "" {
		missing = append(missing, "contract_address")
	}
	if strings.TrimSpace(r.TokenID) == "" {
		missing = append(missing, "token_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	if r.Window.From != nil && r.Window.To != nil && r.Window.To.Before(*r.Window.From) {
		return fmt.Errorf("%w: window end precedes start", ErrInvalidRequest)
	}
	for _, et := range r.EventTypes {
		if _, err := domain.ParseEventType(string(et)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	return nil
}

// ReconcileService runs the fetch, normalize and reconcile steps per category.
type ReconcileService struct {
	tracer    trace.Tracer
	pipelines map[domain.EventType]Pipeline
	metrics   *metrics.Metrics
	now       func() time.Time
	newRunID  func() string
}

// NewReconcileService wires the same provider pair for every category.
func NewReconcileService(tracer trace.Tracer, lootex, openSea Source, m *metrics.Metrics) *ReconcileService {
	pipelines := make(map[domain.EventType]Pipeline, len(domain.EventTypes))
	for _, et := range domain.EventTypes {
		pipelines[et] = Pipeline{Lootex: lootex, OpenSea: openSea}
	}
	return NewReconcileServiceWithPipelines(tracer, pipelines, m)
}

func NewReconcileServiceWithPipelines(tracer trace.Tracer, pipelines map[domain.EventType]Pipeline, m *metrics.Metrics) *ReconcileService {
	return &ReconcileService{
		tracer:    tracer,
		pipelines: pipelines,
		metrics:   m,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// Run reconciles listing, cancel and sale activity in that order. Provider
// failures and dropped records become report warnings; only an invalid request
// or a cancelled context returns an error.
func (s *ReconcileService) Run(ctx context.Context, req Request) (report *domain.Report, err error) {
	ctx, span := s.tracer.Start(ctx, "reconcile-service.run")
	defer span.End()

	started := s.now()
	defer func() { s.metrics.ObserveRun(s.now().Sub(started), err) }()

	if err := req.validate(); err != nil {
		return nil, err
	}

	chainID, slug := domain.TranslateChain(req.Chain)
	span.SetAttributes(
		attribute.String("chain_id", chainID),
		attribute.String("chain_slug", slug),
		attribute.String("contract", req.ContractAddress),
		attribute.String("token_id", req.TokenID),
	)

	report = &domain.Report{
		RunID:           s.newRunID(),
		ChainInput:      req.Chain,
		ChainID:         chainID,
		ChainSlug:       slug,
		ContractAddress: strings.TrimSpace(req.ContractAddress),
		TokenID:         strings.TrimSpace(req.TokenID),
		Window:          req.Window,
		StartedAt:       started.UTC(),
		Categories:      []domain.CategoryReport{},
		Warnings:        []domain.Warning{},
	}
	if !domain.KnownChain(req.Chain) {
		s.warn(report, domain.Warning{
			Stage:   domain.StageInput,
			Message: fmt.Sprintf("chain %q is not in the translation table; passing it through unchanged", req.Chain),
		})
	}

	for _, et := range selectedTypes(req.EventTypes) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := s.pipelines[et]
		if !ok {
			s.warn(report, domain.Warning{Stage: domain.StageInput, EventType: et, Message: "no pipeline configured"})
			continue
		}
		report.Categories = append(report.Categories, s.runCategory(ctx, report, p, et))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.FinishedAt = s.now().UTC()
	return report, nil
}

func (s *ReconcileService) runCategory(ctx context.Context, report *domain.Report, p Pipeline, et domain.EventType) domain.CategoryReport {
	ctx, span := s.tracer.Start(ctx, "reconcile-service.category")
	defer span.End()
	span.SetAttributes(attribute.String("event_type", string(et)))

	base := provider.EventQuery{
		ContractAddress: report.ContractAddress,
		TokenID:         report.TokenID,
		EventType:       et,
		Window:          report.Window,
	}

	lootexQuery := base
	lootexQuery.Chain = report.ChainID
	lootexEvents := s.collect(ctx, report, p.Lootex, et, lootexQuery)

	openSeaQuery := base
	openSeaQuery.Chain = report.ChainSlug
	openSeaEvents := s.collect(ctx, report, p.OpenSea, et, openSeaQuery)

	rec := reconcile.Reconcile(lootexEvents, openSeaEvents)
	s.metrics.ObserveReconciled(string(et), len(rec.Matched), len(rec.OnlyLeft), len(rec.OnlyRight))
	log.Printf("Reconciled %s events: matched=%d only_lootex=%d only_opensea=%d",
		et, len(rec.Matched), len(rec.OnlyLeft), len(rec.OnlyRight))

	policy := domain.PolicyFor(et)
	cat := domain.CategoryReport{
		EventType:     et,
		LootexCount:   len(lootexEvents),
		OpenSeaCount:  len(openSeaEvents),
		Matched:       nonNil(rec.Matched),
		OnlyLootex:    reconcile.Events(rec.Left, rec.OnlyLeft),
		OnlyOpenSea:   []domain.Event{},
		OnlyLootexN:   len(rec.OnlyLeft),
		OnlyOpenSeaN:  len(rec.OnlyRight),
		OpenSeaHidden: !policy.ShowOpenSeaOnly,
	}
	if policy.ShowOpenSeaOnly {
		cat.OnlyOpenSea = reconcile.Events(rec.Right, rec.OnlyRight)
	}
	return cat
}

// collect fetches and normalizes one side. A failed fetch keeps whatever was
// retrieved before the failure.
func (s *ReconcileService) collect(ctx context.Context, report *domain.Report, src Source, et domain.EventType, q provider.EventQuery) []domain.Event {
	name := src.Normalizer.Provider()
	raw, err := src.Fetcher.FetchEvents(ctx, q)
	if err != nil {
		s.warn(report, domain.Warning{
			Stage:     domain.StageFetch,
			Provider:  name,
			EventType: et,
			Message:   fmt.Sprintf("continuing with %d records: %v", len(raw), err),
		})
	}

	_, span := s.tracer.Start(ctx, "reconcile-service.normalize")
	res := src.Normalizer.Normalize(raw, et)
	span.SetAttributes(
		attribute.String("provider", name),
		attribute.Int("events", len(res.Events)),
		attribute.Int("dropped", res.Dropped),
	)
	span.End()

	s.metrics.ObserveNormalized(name, string(et), len(res.Events), res.Dropped)
	for _, w := range res.Warnings {
		s.warn(report, w)
	}
	return res.Events
}

func (s *ReconcileService) warn(report *domain.Report, w domain.Warning) {
	log.Printf("Warning: %s", w)
	report.Warnings = append(report.Warnings, w)
}

// selectedTypes keeps the fixed category order regardless of request order.
func selectedTypes(requested []domain.EventType) []domain.EventType {
	if len(requested) == 0 {
		return domain.EventTypes
	}
	want := make(map[domain.EventType]bool, len(requested))
	for _, et := range requested {
		want[et] = true
	}
	var out []domain.EventType
	for _, et := range domain.EventTypes {
		if want[et] {
			out = append(out, et)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
