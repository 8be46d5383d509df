package slip

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del procesamiento en background de líneas de vale.
var (
	detailsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_slip_details_processed_total",
		Help: "Líneas de vale procesadas, por resultado (processed, failed).",
	}, []string{"result"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "almacen_slip_queue_depth",
		Help: "Tareas de línea de vale esperando en la cola del pool de workers.",
	})
)
