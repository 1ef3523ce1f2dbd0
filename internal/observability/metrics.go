package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Total de buscas orquestradas",
		},
	)
	PagesScrapedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pages_scraped_total",
			Help: "Total de páginas raspadas por estratégia vencedora",
		},
		[]string{"source"},
	)
	FetchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fetch_errors_total",
			Help: "Total de fetches com erro de transporte ou HTTP",
		},
	)
	WatchdogCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "watchdog_cycles_total",
			Help: "Total de ciclos do watchdog executados",
		},
	)
	AlertsFiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alerts_fired_total",
			Help: "Total de alertas de preço disparados",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(
		SearchesTotal,
		PagesScrapedTotal,
		FetchErrorsTotal,
		WatchdogCyclesTotal,
		AlertsFiredTotal,
	)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
