package normalizer

import (
	"encoding/json"
	"testing"

	"nft-recon/internal/domain"
	"nft-recon/internal/provider"
)

func lootexFeed() []provider.RawEvent {
	return []provider.RawEvent{
		{
			"category":        "list",
			"startTime":       "2024-05-01T10:00:00.000Z",
			"endTime":         "2024-06-01T10:00:00.000Z",
			"fromAddress":     "0xowner",
			"price":           "0.25",
			"currencySymbol":  "WETH",
			"hash":            "0xlist1",
			"collectionName":  "Cool Cats Club",
			"contractAddress": "0xabc",
			"tokenId":         "7",
			"amount":          json.Number("2"),
		},
		{
			"category":        "cancel",
			"startTime":       "2024-05-02T10:00:00.000Z",
			"hash":            "0xcancel1",
			"collectionName":  "Cool Cats Club",
			"contractAddress": "0xabc",
			"tokenId":         "7",
		},
		{
			"category":        "sale",
			"startTime":       "2024-05-03T10:00:00Z",
			"fromAddress":     "0xseller",
			"toAddress":       "0xbuyer",
			"txHash":          "0xsale1",
			"collectionName":  "Cool Cats Club",
			"contractAddress": "0xabc",
			"tokenId":         "7",
			"amount":          "1",
		},
	}
}

func TestLootexSelectsCategory(t *testing.T) {
	n := Lootex{}
	for _, et := range domain.EventTypes {
		res := n.Normalize(lootexFeed(), et)
		if len(res.Events) != 1 {
			t.Fatalf("%s: expected 1 event, got %d", et, len(res.Events))
		}
		if res.Events[0].EventType != et {
			t.Fatalf("%s: wrong event type %s", et, res.Events[0].EventType)
		}
		if len(res.Warnings) != 0 || res.Dropped != 0 {
			t.Fatalf("%s: unexpected warnings %+v", et, res.Warnings)
		}
	}
}

func TestLootexListingMapping(t *testing.T) {
	res := Lootex{}.Normalize(lootexFeed(), domain.EventListing)
	ev := res.Events[0]
	if ev.CreatedTime != "2024-05-01T10:00:00Z" || ev.ExpirationTime != "2024-06-01T10:00:00Z" {
		t.Fatalf("unexpected times: %s / %s", ev.CreatedTime, ev.ExpirationTime)
	}
	if ev.Price != "0.25 WETH" {
		t.Fatalf("unexpected price: %s", ev.Price)
	}
	if ev.CollectionName != "cool-cats-club" {
		t.Fatalf("unexpected collection slug: %s", ev.CollectionName)
	}
	if ev.TxHash != "0xlist1" || ev.OwnerAddress != "0xowner" {
		t.Fatalf("unexpected identifiers: %+v", ev)
	}
	if ev.Quantity == nil || *ev.Quantity != 2 {
		t.Fatalf("unexpected quantity: %v", ev.Quantity)
	}
}

func TestLootexMissingFieldsDefaultToSentinel(t *testing.T) {
	raw := []provider.RawEvent{{"category": "list", "hash": "0xlist2"}}
	ev := Lootex{}.Normalize(raw, domain.EventListing).Events[0]
	if ev.CreatedTime != domain.NotAvailable || ev.OwnerAddress != domain.NotAvailable {
		t.Fatalf("expected sentinel defaults, got %+v", ev)
	}
	if ev.Price != "N/A N/A" {
		t.Fatalf("unexpected price default: %s", ev.Price)
	}
	if ev.CollectionName != domain.NotAvailable {
		t.Fatalf("missing collection must stay the sentinel, got %s", ev.CollectionName)
	}
	if ev.Quantity == nil || *ev.Quantity != 0 {
		t.Fatalf("missing quantity should default to 0, got %v", ev.Quantity)
	}
}

func TestLootexLegacyOffsetIsOptIn(t *testing.T) {
	raw := []provider.RawEvent{{"category": "cancel", "startTime": "2024-05-02T20:00:00.000Z", "hash": "0xc"}}

	plain := Lootex{}.Normalize(raw, domain.EventCancel).Events[0]
	if plain.CreatedTime != "2024-05-02T20:00:00Z" {
		t.Fatalf("default must be plain UTC, got %s", plain.CreatedTime)
	}
	shifted := Lootex{TimeOffset: LootexLegacyOffset}.Normalize(raw, domain.EventCancel).Events[0]
	if shifted.CreatedTime != "2024-05-03T04:00:00Z" {
		t.Fatalf("legacy offset not applied, got %s", shifted.CreatedTime)
	}
}

func TestLootexSaleMissingBuyerIsDropped(t *testing.T) {
	raw := lootexFeed()
	delete(raw[2], "toAddress")

	res := Lootex{}.Normalize(raw, domain.EventSale)
	if len(res.Events) != 0 {
		t.Fatalf("incomplete sale must be dropped, got %+v", res.Events)
	}
	if res.Dropped != 1 || len(res.Warnings) != 1 {
		t.Fatalf("expected one dropped record with a warning, got %+v", res)
	}
	if res.Warnings[0].TxHash != "0xsale1" {
		t.Fatalf("warning should name the txhash, got %+v", res.Warnings[0])
	}
}

func TestLootexMalformedRecordIsSkipped(t *testing.T) {
	raw := lootexFeed()
	raw = append(raw, provider.RawEvent{"category": "sale", "startTime": "yesterday", "txHash": "0xbad"})

	res := Lootex{}.Normalize(raw, domain.EventSale)
	if len(res.Events) != 1 || res.Events[0].TxHash != "0xsale1" {
		t.Fatalf("expected the valid sale to survive, got %+v", res.Events)
	}
	if res.Dropped != 1 {
		t.Fatalf("expected the malformed sale to be dropped, got %d", res.Dropped)
	}
}

func TestLootexUnknownEventType(t *testing.T) {
	res := Lootex{}.Normalize(lootexFeed(), "transfer")
	if len(res.Events) != 0 || len(res.Warnings) != 1 {
		t.Fatalf("expected a single warning, got %+v", res)
	}
}
