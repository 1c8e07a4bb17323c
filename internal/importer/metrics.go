package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_tasks_created_total",
		Help: "Import tasks created, by entity type.",
	}, []string{"entity_type"})

	entriesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_entries_processed_total",
		Help: "Import entries processed, by entity type and outcome.",
	}, []string{"entity_type", "status"})
)
