package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"nft-recon/internal/domain"
	"nft-recon/internal/provider"
)

// Result is the output of normalizing one raw batch.
type Result struct {
	Events   []domain.Event
	Warnings []domain.Warning
	Dropped  int
}

// mapFunc maps one raw record. keep=false with a nil error means the record
// belongs to another category and is skipped silently.
type mapFunc func(raw provider.RawEvent) (ev domain.Event, keep bool, err error)

// errIncompleteSale carries the identity fields a sale record lacked.
type errIncompleteSale struct {
	txHash  string
	missing []string
}

func (e *errIncompleteSale) Error() string {
	return "incomplete sale record dropped: missing " + strings.Join(e.missing, ", ")
}

func run(providerName string, eventType domain.EventType, raw []provider.RawEvent, fn mapFunc) Result {
	res := Result{Events: make([]domain.Event, 0, len(raw))}
	for i, r := range raw {
		ev, keep, err := fn(r)
		if err != nil {
			res.Dropped++
			w := domain.Warning{
				Stage:     domain.StageNormalize,
				Provider:  providerName,
				EventType: eventType,
				Message:   fmt.Sprintf("record %d: %v", i, err),
			}
			var inc *errIncompleteSale
			if errors.As(err, &inc) {
				w.TxHash = inc.txHash
				w.Message = inc.Error()
			}
			res.Warnings = append(res.Warnings, w)
			continue
		}
		if keep {
			res.Events = append(res.Events, ev)
		}
	}
	return res
}

func incompleteSale(s saleFields, missingFields []string) error {
	tx := ""
	if s.txHash.OK {
		tx = s.txHash.Value
	}
	return &errIncompleteSale{txHash: tx, missing: missingFields}
}
