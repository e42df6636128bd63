package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nft-recon/internal/domain"
)

// Render writes a human-readable report: per category the provider totals,
// the matched/only counts, and the full records of provider-exclusive events
// the category policy allows. Warnings are listed last.
func Render(w io.Writer, r *domain.Report) error {
	p := &printer{w: w}

	p.printf("Reconciliation run %s\n", r.RunID)
	p.printf("Chain: %s (id %s, slug %s)  Contract: %s  Token ID: %s\n",
		r.ChainInput, r.ChainID, r.ChainSlug, r.ContractAddress, r.TokenID)
	p.printf("Window: %s\n", windowString(r.Window))

	for _, cat := range r.Categories {
		p.printf("\n--- Comparing %s Events ---\n", title(string(cat.EventType)))
		p.printf("Lootex events: %d\n", cat.LootexCount)
		p.printf("OpenSea events: %d\n", cat.OpenSeaCount)
		p.printf("Total matching events: %d\n", len(cat.Matched))
		p.printf("Events only in Lootex: %d\n", cat.OnlyLootexN)
		p.printf("Events only in OpenSea: %d\n", cat.OnlyOpenSeaN)

		if len(cat.OnlyLootex) > 0 {
			p.printf("\nEvents only in Lootex:\n")
			p.events(cat.OnlyLootex)
		}
		switch {
		case cat.OpenSeaHidden && cat.OnlyOpenSeaN > 0:
			p.printf("\n%d %s events only in OpenSea are counted but not listed.\n", cat.OnlyOpenSeaN, cat.EventType)
		case len(cat.OnlyOpenSea) > 0:
			p.printf("\nEvents only in OpenSea:\n")
			p.events(cat.OnlyOpenSea)
		}
	}

	if len(r.Warnings) > 0 {
		p.printf("\nWarnings (%d):\n", len(r.Warnings))
		for _, warn := range r.Warnings {
			p.printf("  - %s\n", warn)
		}
	}
	return p.err
}

// printer remembers the first write error so Render can return it once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) events(events []domain.Event) {
	for _, ev := range events {
		b, err := json.MarshalIndent(ev, "", "  ")
		if err != nil {
			p.printf("Transaction Hash: %s (unrenderable: %v)\n", ev.TxHash, err)
			continue
		}
		p.printf("%s\n\n", b)
	}
}

func windowString(w domain.TimeWindow) string {
	if w.IsZero() {
		return "full history"
	}
	from, to := "beginning", "now"
	if w.From != nil {
		from = domain.FormatTimestamp(*w.From)
	}
	if w.To != nil {
		to = domain.FormatTimestamp(*w.To)
	}
	return from + " to " + to
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
