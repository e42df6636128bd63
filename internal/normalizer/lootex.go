package normalizer

import (
	"fmt"
	"strings"
	"time"

	"nft-recon/internal/domain"
	"nft-recon/internal/provider"
)

// lootexCategories maps an event type to the category tag on Lootex rows.
var lootexCategories = map[domain.EventType]string{
	domain.EventListing: "list",
	domain.EventCancel:  "cancel",
	domain.EventSale:    "sale",
}

var lootexMappers = map[domain.EventType]func(Lootex, provider.RawEvent) (domain.Event, error){
	domain.EventListing: Lootex.listing,
	domain.EventCancel:  Lootex.cancel,
	domain.EventSale:    Lootex.sale,
}

// Lootex normalizes the mixed Lootex order history feed.
type Lootex struct {
	// TimeOffset is added to every parsed timestamp. Zero means plain UTC.
	TimeOffset time.Duration
}

func (n Lootex) Provider() string { return domain.ProviderLootex }

// Normalize keeps the rows tagged with eventType and maps them to events.
func (n Lootex) Normalize(raw []provider.RawEvent, eventType domain.EventType) Result {
	tag, ok := lootexCategories[eventType]
	if !ok {
		return Result{Warnings: []domain.Warning{{
			Stage:     domain.StageNormalize,
			Provider:  domain.ProviderLootex,
			EventType: eventType,
			Message:   fmt.Sprintf("unsupported event type %q", eventType),
		}}}
	}

	mapper := lootexMappers[eventType]

	return run(domain.ProviderLootex, eventType, raw, func(r provider.RawEvent) (domain.Event, bool, error) {
		if category := stringField(r, "category"); !category.OK || category.Value != tag {
			return domain.Event{}, false, nil
		}
		ev, err := mapper(n, r)
		if err != nil {
			return domain.Event{}, false, err
		}
		return ev, true, nil
	})
}

func (n Lootex) listing(r provider.RawEvent) (domain.Event, error) {
	created, err := isoTimestamp(r, n.TimeOffset, "startTime")
	if err != nil {
		return domain.Event{}, err
	}
	expires, err := isoTimestamp(r, n.TimeOffset, "endTime")
	if err != nil {
		return domain.Event{}, err
	}
	qty, _, err := intField(r, "amount")
	if err != nil {
		return domain.Event{}, err
	}
	price := stringField(r, "price").OrNA() + " " + stringField(r, "currencySymbol").OrNA()

	return domain.Event{
		EventType:       domain.EventListing,
		CreatedTime:     created.OrNA(),
		ExpirationTime:  expires.OrNA(),
		OwnerAddress:    stringField(r, "fromAddress").OrNA(),
		Price:           price,
		TxHash:          stringField(r, "hash").OrNA(),
		CollectionName:  lootexCollection(r).OrNA(),
		ContractAddress: stringField(r, "contractAddress").OrNA(),
		TokenID:         stringField(r, "tokenId").OrNA(),
		Quantity:        quantityPtr(qty),
	}, nil
}

func (n Lootex) cancel(r provider.RawEvent) (domain.Event, error) {
	created, err := isoTimestamp(r, n.TimeOffset, "startTime")
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		EventType:       domain.EventCancel,
		CreatedTime:     created.OrNA(),
		TxHash:          stringField(r, "hash").OrNA(),
		CollectionName:  lootexCollection(r).OrNA(),
		ContractAddress: stringField(r, "contractAddress").OrNA(),
		TokenID:         stringField(r, "tokenId").OrNA(),
	}, nil
}

func (n Lootex) sale(r provider.RawEvent) (domain.Event, error) {
	created, err := isoTimestamp(r, n.TimeOffset, "startTime")
	if err != nil {
		return domain.Event{}, err
	}
	qty, _, err := intField(r, "amount")
	if err != nil {
		return domain.Event{}, err
	}
	s := saleFields{
		createdTime: created,
		fromAddress: stringField(r, "fromAddress"),
		toAddress:   stringField(r, "toAddress"),
		txHash:      stringField(r, "txHash"),
		collection:  lootexCollection(r),
		contract:    stringField(r, "contractAddress"),
		tokenID:     stringField(r, "tokenId"),
		quantity:    qty,
	}
	if missing := validateSale(s); len(missing) > 0 {
		return domain.Event{}, incompleteSale(s, missing)
	}
	return s.event(), nil
}

// lootexCollection turns a display name such as "Cool Cats" into "cool-cats".
func lootexCollection(r provider.RawEvent) Field {
	return stringField(r, "collectionName").Map(func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), " ", "-")
	})
}
