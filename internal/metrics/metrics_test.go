package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegistryExposesCounters(t *testing.T) {
	r := NewRegistry()
	r.ObserveMatch(true)
	r.ObserveMatch(false)
	r.ObserveMatch(false)
	r.ObserveOrder("voice", 40)
	r.ObserveImport(true)
	r.WebhookRejected()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	out := string(body)

	for _, want := range []string{
		`orderpilot_menu_matches_total{result="unmatched"} 2`,
		`orderpilot_menu_matches_total{result="matched"} 1`,
		`orderpilot_orders_created_total{source="voice"} 1`,
		`orderpilot_webhook_rejected_total 1`,
		`orderpilot_menu_imports_total{result="ok"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
