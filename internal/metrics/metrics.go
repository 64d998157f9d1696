package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Rejected      prometheus.Counter
	MenuMatches   *prometheus.CounterVec
	OrdersCreated *prometheus.CounterVec
	OrderTotal    prometheus.Histogram
	MenuImports   *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orderpilot_webhook_rejected_total",
		Help: "Voice webhook calls refused for a bad or missing bearer token.",
	})
	matches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderpilot_menu_matches_total",
		Help: "Requested items by menu match outcome.",
	}, []string{"result"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderpilot_orders_created_total",
	}, []string{"source"})
	total := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orderpilot_order_total_amount",
		Buckets: []float64{5, 10, 20, 40, 80, 160, 320},
	})
	imports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderpilot_menu_imports_total",
	}, []string{"result"})

	r.MustRegister(rejected, matches, orders, total, imports)
	return &Registry{
		reg:           r,
		Rejected:      rejected,
		MenuMatches:   matches,
		OrdersCreated: orders,
		OrderTotal:    total,
		MenuImports:   imports,
	}
}

func (r *Registry) ObserveMatch(matched bool) {
	if matched {
		r.MenuMatches.WithLabelValues("matched").Inc()
		return
	}
	r.MenuMatches.WithLabelValues("unmatched").Inc()
}

func (r *Registry) ObserveOrder(source string, total float64) {
	r.OrdersCreated.WithLabelValues(source).Inc()
	r.OrderTotal.Observe(total)
}

func (r *Registry) ObserveImport(ok bool) {
	if ok {
		r.MenuImports.WithLabelValues("ok").Inc()
		return
	}
	r.MenuImports.WithLabelValues("failed").Inc()
}

func (r *Registry) WebhookRejected() { r.Rejected.Inc() }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
