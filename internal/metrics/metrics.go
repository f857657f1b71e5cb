package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shiptrack_logins_total",
		Help: "Total number of successful phone/PIN sign-ins.",
	})

	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shiptrack_login_failures_total",
		Help: "Total number of rejected sign-in attempts.",
	})

	AuthRepairsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shiptrack_auth_repairs_total",
		Help: "Total number of provider-account repairs performed.",
	})

	ShipmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shiptrack_shipments_created_total",
		Help: "Total number of shipments registered at intake.",
	})

	StatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiptrack_status_updates_total",
		Help: "Total number of shipment status writes, by status.",
	},
		[]string{"status"},
	)

	MigrationOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiptrack_migration_outcomes_total",
		Help: "User migration outcomes, by result.",
	},
		[]string{"outcome"},
	)
)
