package domain

import (
	"fmt"
	"strings"
	"time"
)

// NotAvailable marks a normalized field the provider did not report.
const NotAvailable = "N/A"

// TimestampLayout is the canonical UTC rendering of every normalized timestamp.
const TimestampLayout = "2006-01-02T15:04:05Z"

type EventType string

const (
	EventListing EventType = "listing"
	EventCancel  EventType = "cancel"
	EventSale    EventType = "sale"
)

// EventTypes is the order in which a run reconciles categories.
var EventTypes = []EventType{EventListing, EventCancel, EventSale}

func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventListing, EventCancel, EventSale:
		return EventType(s), nil
	default:
		return "", fmt.Errorf("unknown event type: %q", s)
	}
}

// Provider names used in reports, warnings and metrics labels.
const (
	ProviderLootex  = "lootex"
	ProviderOpenSea = "opensea"
)

// Event is a marketplace event normalized into the shape shared by both providers.
// Category-specific fields stay empty for categories that do not carry them.
type Event struct {
	EventType       EventType `json:"event_type"`
	CreatedTime     string    `json:"created_time"`
	ExpirationTime  string    `json:"expiration_time,omitempty"`
	OwnerAddress    string    `json:"owner_address,omitempty"`
	FromAddress     string    `json:"from_address,omitempty"`
	ToAddress       string    `json:"to_address,omitempty"`
	Price           string    `json:"price,omitempty"`
	TxHash          string    `json:"txhash"`
	CollectionName  string    `json:"collection_name"`
	ContractAddress string    `json:"contract_address"`
	TokenID         string    `json:"token_id"`
	Quantity        *int64    `json:"quantity,omitempty"`
}

// FormatTimestamp renders t in the canonical UTC layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// TimeWindow bounds a history query. A nil side is unbounded.
type TimeWindow struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

func (w TimeWindow) IsZero() bool {
	return w.From == nil && w.To == nil
}

// Warning is a non-fatal problem observed during a run.
type Warning struct {
	Stage     string    `json:"stage"`
	Provider  string    `json:"provider,omitempty"`
	EventType EventType `json:"event_type,omitempty"`
	TxHash    string    `json:"txhash,omitempty"`
	Message   string    `json:"message"`
}

func (w Warning) String() string {
	s := w.Stage
	if w.Provider != "" {
		s += " " + w.Provider
	}
	if w.EventType != "" {
		s += " " + string(w.EventType)
	}
	if w.TxHash != "" {
		s += " tx=" + w.TxHash
	}
	return s + ": " + w.Message
}

// Warning stages.
const (
	StageInput     = "input"
	StageFetch     = "fetch"
	StageNormalize = "normalize"
)

// InputTimeLayout is the layout accepted for user-supplied window bounds.
const InputTimeLayout = "2006-01-02 15:04:05"

// ParseTimeBound parses a window bound given as "YYYY-MM-DD HH:MM:SS" (UTC) or
// RFC 3339. Blank input is an unbounded side and returns nil.
func ParseTimeBound(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(InputTimeLayout, s, time.UTC); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: expected %s", s, "YYYY-MM-DD HH:MM:SS")
	}
	t = t.UTC()
	return &t, nil
}
