package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/state"
)

// Metrics agrupa os coletores do tracker. Um *Metrics nil é aceito e ignora tudo.
type Metrics struct {
	mutations    *prometheus.CounterVec
	noops        *prometheus.CounterVec
	storeErrors  *prometheus.CounterVec
	notifyErrors prometheus.Counter
	bankroll     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_mutations_total", Help: "mutações por ação e resultado",
		}, []string{"action", "result"}),
		noops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_noop_total", Help: "mutações ignoradas por id desconhecido",
		}, []string{"action"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_store_errors_total", Help: "erros de armazenamento por estágio",
		}, []string{"stage"}),
		notifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_notify_errors_total", Help: "falhas ao publicar notificações",
		}),
		bankroll: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_bankroll", Help: "bankroll atual",
		}),
	}
	reg.MustRegister(m.mutations, m.noops, m.storeErrors, m.notifyErrors, m.bankroll)
	return m
}

func (m *Metrics) mutation(a state.Action, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(string(a), result).Inc()
}

func (m *Metrics) noop(a state.Action) {
	if m == nil {
		return
	}
	m.noops.WithLabelValues(string(a)).Inc()
}

func (m *Metrics) storeError(stage string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(stage).Inc()
}

func (m *Metrics) notifyError() {
	if m == nil {
		return
	}
	m.notifyErrors.Inc()
}

func (m *Metrics) setBankroll(v decimal.Decimal) {
	if m == nil {
		return
	}
	m.bankroll.Set(v.InexactFloat64())
}
