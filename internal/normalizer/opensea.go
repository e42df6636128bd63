package normalizer

import (
	"fmt"

	"nft-recon/internal/domain"
	"nft-recon/internal/provider"

	"github.com/shopspring/decimal"
)

const priceDecimals = 6

var openSeaMappers = map[domain.EventType]func(OpenSea, provider.RawEvent) (domain.Event, bool, error){
	domain.EventListing: OpenSea.listing,
	domain.EventCancel:  OpenSea.cancel,
	domain.EventSale:    OpenSea.sale,
}

// OpenSea normalizes OpenSea asset events. The fetch already filtered by
// category, so only sub-type checks happen here.
type OpenSea struct{}

func (n OpenSea) Provider() string { return domain.ProviderOpenSea }

func (n OpenSea) Normalize(raw []provider.RawEvent, eventType domain.EventType) Result {
	mapper, ok := openSeaMappers[eventType]
	if !ok {
		return Result{Warnings: []domain.Warning{{
			Stage:     domain.StageNormalize,
			Provider:  domain.ProviderOpenSea,
			EventType: eventType,
			Message:   fmt.Sprintf("unsupported event type %q", eventType),
		}}}
	}
	return run(domain.ProviderOpenSea, eventType, raw, func(r provider.RawEvent) (domain.Event, bool, error) {
		return mapper(n, r)
	})
}

// listing maps "order" rows; other rows returned by the listing query are skipped.
func (n OpenSea) listing(r provider.RawEvent) (domain.Event, bool, error) {
	if t := stringField(r, "event_type"); !t.OK || t.Value != "order" {
		return domain.Event{}, false, nil
	}
	created, err := epochTimestamp(r, "start_date")
	if err != nil {
		return domain.Event{}, false, err
	}
	expires, err := epochTimestamp(r, "expiration_date")
	if err != nil {
		return domain.Event{}, false, err
	}
	qty, _, err := intField(r, "quantity")
	if err != nil {
		return domain.Event{}, false, err
	}
	price, err := openSeaUnitPrice(r, qty)
	if err != nil {
		return domain.Event{}, false, err
	}

	return domain.Event{
		EventType:       domain.EventListing,
		CreatedTime:     created.OrNA(),
		ExpirationTime:  expires.OrNA(),
		OwnerAddress:    stringField(r, "maker").OrNA(),
		Price:           price.OrNA(),
		TxHash:          stringField(r, "order_hash").OrNA(),
		CollectionName:  stringField(r, "asset", "collection").OrNA(),
		ContractAddress: stringField(r, "asset", "contract").OrNA(),
		TokenID:         stringField(r, "asset", "identifier").OrNA(),
		Quantity:        quantityPtr(qty),
	}, true, nil
}

// cancel skips offer cancellations; only listing cancellations are reconciled.
func (n OpenSea) cancel(r provider.RawEvent) (domain.Event, bool, error) {
	if t := stringField(r, "order_type"); t.OK && t.Value == "offer" {
		return domain.Event{}, false, nil
	}
	created, err := epochTimestamp(r, "event_timestamp")
	if err != nil {
		return domain.Event{}, false, err
	}
	return domain.Event{
		EventType:       domain.EventCancel,
		CreatedTime:     created.OrNA(),
		TxHash:          stringField(r, "order_hash").OrNA(),
		CollectionName:  stringField(r, "nft", "collection").OrNA(),
		ContractAddress: stringField(r, "nft", "contract").OrNA(),
		TokenID:         stringField(r, "nft", "identifier").OrNA(),
	}, true, nil
}

func (n OpenSea) sale(r provider.RawEvent) (domain.Event, bool, error) {
	created, err := epochTimestamp(r, "event_timestamp")
	if err != nil {
		return domain.Event{}, false, err
	}
	qty, _, err := intField(r, "quantity")
	if err != nil {
		return domain.Event{}, false, err
	}
	s := saleFields{
		createdTime: created,
		fromAddress: stringField(r, "seller"),
		toAddress:   stringField(r, "buyer"),
		txHash:      stringField(r, "transaction"),
		collection:  stringField(r, "nft", "collection"),
		contract:    stringField(r, "nft", "contract"),
		tokenID:     stringField(r, "nft", "identifier"),
		quantity:    qty,
	}
	if missing := validateSale(s); len(missing) > 0 {
		return domain.Event{}, false, incompleteSale(s, missing)
	}
	return s.event(), true, nil
}

// openSeaUnitPrice is (payment.quantity / 10^payment.decimals) / quantity,
// rendered with six fixed decimals and the payment symbol.
func openSeaUnitPrice(r provider.RawEvent, qty int64) (Field, error) {
	amount, ok, err := decimalField(r, "payment", "quantity")
	if err != nil {
		return missing, err
	}
	if !ok {
		return missing, nil
	}
	decimals, ok, err := intField(r, "payment", "decimals")
	if err != nil {
		return missing, err
	}
	if !ok {
		return missing, nil
	}
	if qty <= 0 {
		return missing, fmt.Errorf("quantity must be positive to derive a unit price, got %d", qty)
	}
	return present(FormatUnitPrice(amount, int32(decimals), qty, stringField(r, "payment", "symbol").OrNA())), nil
}

// FormatUnitPrice divides a raw token amount by 10^decimals and by quantity and
// formats it to six fixed decimals (half away from zero) followed by symbol.
func FormatUnitPrice(amount decimal.Decimal, decimals int32, quantity int64, symbol string) string {
	total := amount.Shift(-decimals)
	unit := total.Div(decimal.NewFromInt(quantity))
	return unit.StringFixed(priceDecimals) + " " + symbol
}
