package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "currency_converter"

// Metrics содержит метрики конвейера конвертаций и таблицы курсов
type Metrics struct {
	registry *prometheus.Registry

	// Конвертации
	ConversionsSubmitted prometheus.Counter
	ConversionsCompleted *prometheus.CounterVec
	CompletionDuration   prometheus.Histogram
	QueueDepth           prometheus.Gauge

	// Курсы
	RateRefreshes  *prometheus.CounterVec
	RateCurrencies prometheus.Gauge
	RateGeneration prometheus.Gauge
}

// New создает метрики в отдельном реестре вместе с go и process коллекторами
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ConversionsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_submitted_total",
			Help:      "Количество принятых заявок на конвертацию",
		}),
		ConversionsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_completed_total",
			Help:      "Количество завершенных конвертаций по итоговому статусу",
		}, []string{"status"}),
		CompletionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_completion_duration_seconds",
			Help:      "Время асинхронного завершения конвертации",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms, 2ms, 4ms...
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "conversion_queue_depth",
			Help:      "Количество заявок, ожидающих воркера",
		}),

		RateRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_refresh_total",
			Help:      "Количество обновлений таблицы курсов по результату",
		}, []string{"result"}),
		RateCurrencies: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_table_currencies",
			Help:      "Количество валют в текущем снимке курсов",
		}),
		RateGeneration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_table_generation",
			Help:      "Номер поколения текущего снимка курсов",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
