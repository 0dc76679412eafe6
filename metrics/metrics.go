// Package metrics exposes the engine's prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Engine struct {
	OrdersPlaced    prometheus.Counter
	OrdersCancelled prometheus.Counter
	OrdersModified  prometheus.Counter
	OrdersRejected  prometheus.Counter
	Trades          prometheus.Counter
	TradedQty       prometheus.Counter
	WALAppends      prometheus.Counter
	RestingOrders   prometheus.Gauge
}

func New(reg prometheus.Registerer) *Engine {
	factory := promauto.With(reg)
	return &Engine{
		OrdersPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "lob_orders_placed_total",
			Help: "Orders accepted by the matching engine.",
		}),
		OrdersCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "lob_orders_cancelled_total",
			Help: "Orders cancelled by request.",
		}),
		OrdersModified: factory.NewCounter(prometheus.CounterOpts{
			Name: "lob_orders_modified_total",
			Help: "Orders modified via cancel and reinsert.",
		}),
		OrdersRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "lob_orders_rejected_total",
			Help: "Submissions dropped as no-ops (duplicate id, unmatchable fill-and-kill).",
		}),
		Trades: factory.NewCounter(prometheus.CounterOpts{
			Name: "lob_trades_total",
			Help: "Trades produced by matching.",
		}),
		TradedQty: factory.NewCounter(prometheus.CounterOpts{
			Name: "lob_traded_quantity_total",
			Help: "Total quantity matched.",
		}),
		WALAppends: factory.NewCounter(prometheus.CounterOpts{
			Name: "lob_wal_appends_total",
			Help: "Entry WAL records appended.",
		}),
		RestingOrders: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lob_resting_orders",
			Help: "Orders currently resting in the book.",
		}),
	}
}
