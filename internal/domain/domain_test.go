package domain

import (
	"testing"
	"time"
)

func TestTranslateChainKnownInputs(t *testing.T) {
	tests := map[string][2]string{
		"137":      {"137", "matic"},
		"matic":    {"137", "matic"},
		" MATIC ":  {"137", "matic"},
		"1":        {"1", "ethereum"},
		"ethereum": {"1", "ethereum"},
		"8453":     {"8453", "base"},
		"base":     {"8453", "base"},
	}
	for input, want := range tests {
		id, slug := TranslateChain(input)
		if id != want[0] || slug != want[1] {
			t.Errorf("TranslateChain(%q) = (%s, %s), want (%s, %s)", input, id, slug, want[0], want[1])
		}
	}
}

func TestTranslateChainRoundTrip(t *testing.T) {
	for _, c := range SupportedChains() {
		idFromSlug, _ := TranslateChain(c.Slug)
		if idFromSlug != c.ID {
			t.Fatalf("slug %s resolved to %s, want %s", c.Slug, idFromSlug, c.ID)
		}
		id, slug := TranslateChain(idFromSlug)
		if id != c.ID || slug != c.Slug {
			t.Fatalf("round trip for %s gave (%s, %s)", c.Slug, id, slug)
		}
	}
}

func TestTranslateChainUnknownPassesThrough(t *testing.T) {
	for _, input := range []string{"42161", "arbitrum", "zk-sync"} {
		id, slug := TranslateChain(input)
		if id != input || slug != input {
			t.Errorf("TranslateChain(%q) = (%s, %s), want passthrough", input, id, slug)
		}
	}
}

func TestSupportedChainsOrdered(t *testing.T) {
	chains := SupportedChains()
	if len(chains) != 3 {
		t.Fatalf("expected 3 chains, got %d", len(chains))
	}
	if chains[0].ID != "1" || chains[1].ID != "137" || chains[2].ID != "8453" {
		t.Fatalf("unexpected order: %+v", chains)
	}
}

func TestParseEventType(t *testing.T) {
	for _, et := range EventTypes {
		got, err := ParseEventType(string(et))
		if err != nil || got != et {
			t.Fatalf("ParseEventType(%s) = %s, %v", et, got, err)
		}
	}
	if _, err := ParseEventType("transfer"); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}

func TestReportPolicies(t *testing.T) {
	if PolicyFor(EventSale).ShowOpenSeaOnly {
		t.Fatal("OpenSea-only sales must be hidden")
	}
	if !PolicyFor(EventListing).ShowOpenSeaOnly || !PolicyFor(EventCancel).ShowOpenSeaOnly {
		t.Fatal("OpenSea-only listings and cancels must be shown")
	}
}

func TestFormatTimestampUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	ts := time.Date(2024, 3, 1, 8, 0, 0, 0, loc)
	if got := FormatTimestamp(ts); got != "2024-03-01T00:00:00Z" {
		t.Fatalf("unexpected timestamp: %s", got)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Stage: StageFetch, Provider: ProviderOpenSea, EventType: EventSale, Message: "boom"}
	if got := w.String(); got != "fetch opensea sale: boom" {
		t.Fatalf("unexpected warning string: %s", got)
	}
}

func TestKnownChain(t *testing.T) {
	if !KnownChain("Base") || !KnownChain("137") {
		t.Fatal("expected table entries to be known")
	}
	if KnownChain("solana") {
		t.Fatal("solana is not in the table")
	}
}

func TestParseTimeBound(t *testing.T) {
	got, err := ParseTimeBound(" 2024-05-01 12:30:00 ")
	if err != nil || got == nil || !got.Equal(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected result: %v, %v", got, err)
	}

	got, err = ParseTimeBound("2024-05-01T20:30:00+08:00")
	if err != nil || got == nil || got.Location() != time.UTC || got.Hour() != 12 {
		t.Fatalf("expected RFC3339 input in UTC, got %v, %v", got, err)
	}

	if got, err := ParseTimeBound(""); got != nil || err != nil {
		t.Fatalf("blank input should be unbounded, got %v, %v", got, err)
	}
	if _, err := ParseTimeBound("05/01/2024"); err == nil {
		t.Fatal("expected error for malformed input")
	}
}
