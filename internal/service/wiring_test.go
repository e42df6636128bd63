package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nft-recon/internal/config"
	"nft-recon/internal/domain"
	"nft-recon/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func lootexSaleJSON(tx string) string {
	return fmt.Sprintf(`{"category":"sale","startTime":"2024-05-03T10:00:00.000Z","fromAddress":"0xs","toAddress":"0xb","txHash":%q,"collectionName":"Cool Cats","contractAddress":"0xabc","tokenId":"7","amount":1}`, tx)
}

func openSeaSaleJSON(tx string) string {
	return fmt.Sprintf(`{"event_type":"sale","event_timestamp":1714730400,"seller":"0xs","buyer":"0xb","transaction":%q,"quantity":1,"nft":{"collection":"cool-cats","contract":"0xabc","identifier":"7"}}`, tx)
}

func TestReconcileServiceFromConfigEndToEnd(t *testing.T) {
	lootexSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/history" || r.URL.Query().Get("chainId") != "8453" {
			t.Errorf("unexpected lootex request: %s", r.URL)
		}
		rows := strings.Join([]string{lootexSaleJSON("0x1"), lootexSaleJSON("0x2"), lootexSaleJSON("0x3")}, ",")
		fmt.Fprintf(w, `{"ordersHistory":[%s],"pagination":{"page":1,"totalPage":1}}`, rows)
	}))
	defer lootexSrv.Close()

	openSeaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/events/chain/base/contract/0xabc/nfts/7") {
			t.Errorf("unexpected opensea path: %s", r.URL.Path)
		}
		if r.Header.Get("X-API-KEY") != "os-key" {
			t.Errorf("missing api key header")
		}
		if r.URL.Query().Get("event_type") != "sale" {
			fmt.Fprint(w, `{"asset_events":[]}`)
			return
		}
		rows := strings.Join([]string{openSeaSaleJSON("0x1"), openSeaSaleJSON("0x2"), openSeaSaleJSON("0x4")}, ",")
		fmt.Fprintf(w, `{"asset_events":[%s]}`, rows)
	}))
	defer openSeaSrv.Close()

	cfg := &config.Config{
		LootexAPIURL:    lootexSrv.URL,
		LootexPageSize:  30,
		OpenSeaAPIURL:   openSeaSrv.URL,
		OpenSeaAPIKey:   "os-key",
		OpenSeaPageSize: 50,
		FetchMaxPages:   10,
		HTTPTimeoutSecs: 5,
	}
	m := metrics.New()
	svc := NewReconcileServiceFromConfig(testTracer, cfg, m)

	report, err := svc.Run(context.Background(), Request{Chain: "base", ContractAddress: "0xabc", TokenID: "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sale := report.Category(domain.EventSale)
	if len(sale.Matched) != 2 || sale.OnlyLootexN != 1 || sale.OnlyOpenSeaN != 1 {
		t.Fatalf("expected 2/1/1, got %+v", sale)
	}
	if sale.OnlyLootex[0].CollectionName != "cool-cats" || sale.OnlyLootex[0].CreatedTime != "2024-05-03T10:00:00Z" {
		t.Fatalf("unexpected normalized lootex sale: %+v", sale.OnlyLootex[0])
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", report.Warnings)
	}
	got, err := testutil.GatherAndCount(m.Registry(), "nft_recon_runs_total")
	if err != nil || got != 1 {
		t.Fatalf("expected one run series, got %d (%v)", got, err)
	}
}
