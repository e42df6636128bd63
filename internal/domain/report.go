package domain

import "time"

// ReportPolicy controls which provider-exclusive records a category report shows.
// Lootex-only records are always shown.
type ReportPolicy struct {
	ShowOpenSeaOnly bool
}

// ReportPolicies is the per-category rendering policy. OpenSea-only sales are
// counted but not listed.
var ReportPolicies = map[EventType]ReportPolicy{
	EventListing: {ShowOpenSeaOnly: true},
	EventCancel:  {ShowOpenSeaOnly: true},
	EventSale:    {ShowOpenSeaOnly: false},
}

// PolicyFor returns the policy for t, showing everything for unknown categories.
func PolicyFor(t EventType) ReportPolicy {
	if p, ok := ReportPolicies[t]; ok {
		return p
	}
	return ReportPolicy{ShowOpenSeaOnly: true}
}

// CategoryReport is the reconciliation outcome for one event category.
type CategoryReport struct {
	EventType     EventType `json:"event_type"`
	LootexCount   int       `json:"lootex_count"`
	OpenSeaCount  int       `json:"opensea_count"`
	Matched       []string  `json:"matched"`
	OnlyLootex    []Event   `json:"only_lootex"`
	OnlyOpenSea   []Event   `json:"only_opensea"`
	OnlyLootexN   int       `json:"only_lootex_count"`
	OnlyOpenSeaN  int       `json:"only_opensea_count"`
	OpenSeaHidden bool      `json:"opensea_only_hidden"`
}

// Report is the result of one reconciliation run.
type Report struct {
	RunID           string           `json:"run_id"`
	ChainInput      string           `json:"chain_input"`
	ChainID         string           `json:"chain_id"`
	ChainSlug       string           `json:"chain_slug"`
	ContractAddress string           `json:"contract_address"`
	TokenID         string           `json:"token_id"`
	Window          TimeWindow       `json:"window"`
	StartedAt       time.Time        `json:"started_at"`
	FinishedAt      time.Time        `json:"finished_at"`
	Categories      []CategoryReport `json:"categories"`
	Warnings        []Warning        `json:"warnings"`
}

// Category returns the report for t, or nil if the run did not produce one.
func (r *Report) Category(t EventType) *CategoryReport {
	for i := range r.Categories {
		if r.Categories[i].EventType == t {
			return &r.Categories[i]
		}
	}
	return nil
}
