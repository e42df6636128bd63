package service

import (
	"nft-recon/internal/config"
	"nft-recon/internal/metrics"
	"nft-recon/internal/normalizer"
	"nft-recon/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

// NewReconcileServiceFromConfig builds the Lootex and OpenSea sources from cfg.
// m may be nil.
func NewReconcileServiceFromConfig(tracer trace.Tracer, cfg *config.Config, m *metrics.Metrics) *ReconcileService {
	var recorder provider.PageRecorder
	if m != nil {
		recorder = m
	}

	lootex := provider.NewLootexProvider(tracer, provider.LootexOptions{
		BaseURL:      cfg.LootexAPIURL,
		PageSize:     cfg.LootexPageSize,
		MaxPages:     cfg.FetchMaxPages,
		PlatformType: cfg.LootexPlatformType,
		Timeout:      cfg.HTTPTimeout(),
		Recorder:     recorder,
	})
	openSea := provider.NewOpenSeaProvider(tracer, provider.OpenSeaOptions{
		BaseURL:  cfg.OpenSeaAPIURL,
		APIKey:   cfg.OpenSeaAPIKey,
		PageSize: cfg.OpenSeaPageSize,
		MaxPages: cfg.FetchMaxPages,
		Timeout:  cfg.HTTPTimeout(),
		Recorder: recorder,
	})

	return NewReconcileService(tracer,
		Source{Fetcher: lootex, Normalizer: normalizer.Lootex{TimeOffset: cfg.LootexTimeOffset}},
		Source{Fetcher: openSea, Normalizer: normalizer.OpenSea{}},
		m,
	)
}
