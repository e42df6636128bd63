package reconcile

import (
	"sort"

	"nft-recon/internal/domain"
)

// Result partitions the transaction hashes of two event sequences.
// Left and Right hold the last event seen per hash on each side.
type Result struct {
	Matched   []string
	OnlyLeft  []string
	OnlyRight []string
	Left      map[string]domain.Event
	Right     map[string]domain.Event
}

// Reconcile matches two sequences by txhash only; other fields of matched
// events are not compared. Hash lists are sorted for stable output.
func Reconcile(left, right []domain.Event) Result {
	res := Result{
		Left:  index(left),
		Right: index(right),
	}
	for h := range res.Left {
		if _, ok := res.Right[h]; ok {
			res.Matched = append(res.Matched, h)
		} else {
			res.OnlyLeft = append(res.OnlyLeft, h)
		}
	}
	for h := range res.Right {
		if _, ok := res.Left[h]; !ok {
			res.OnlyRight = append(res.OnlyRight, h)
		}
	}
	sort.Strings(res.Matched)
	sort.Strings(res.OnlyLeft)
	sort.Strings(res.OnlyRight)
	return res
}

// index keys events by txhash; later duplicates replace earlier ones.
func index(events []domain.Event) map[string]domain.Event {
	m := make(map[string]domain.Event, len(events))
	for _, ev := range events {
		m[ev.TxHash] = ev
	}
	return m
}

// Events returns the events for hashes in the order given.
func Events(byHash map[string]domain.Event, hashes []string) []domain.Event {
	out := make([]domain.Event, 0, len(hashes))
	for _, h := range hashes {
		if ev, ok := byHash[h]; ok {
			out = append(out, ev)
		}
	}
	return out
}
