package normalizer

import (
	"reflect"
	"testing"

	"nft-recon/internal/domain"
)

func TestValidateSale(t *testing.T) {
	complete := saleFields{
		createdTime: present("2024-01-01T00:00:00Z"),
		fromAddress: present("0xa"),
		toAddress:   present("0xb"),
		txHash:      present("0xtx"),
		contract:    present("0xc"),
		tokenID:     present("1"),
	}
	if got := validateSale(complete); len(got) != 0 {
		t.Fatalf("complete sale reported missing %v", got)
	}

	partial := complete
	partial.toAddress = missing
	partial.tokenID = present(domain.NotAvailable)
	want := []string{"to_address", "token_id"}
	if got := validateSale(partial); !reflect.DeepEqual(got, want) {
		t.Fatalf("validateSale = %v, want %v", got, want)
	}

	noCollection := complete
	noCollection.collection = missing
	if got := validateSale(noCollection); len(got) != 0 {
		t.Fatalf("collection is not an identity field, got %v", got)
	}
}

func TestFieldOrNA(t *testing.T) {
	if missing.OrNA() != domain.NotAvailable {
		t.Fatal("missing field must render as sentinel")
	}
	if present("x").OrNA() != "x" {
		t.Fatal("present field must render its value")
	}
}
