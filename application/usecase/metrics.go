package usecase

import "github.com/VictoriaMetrics/metrics"

var (
	notificationsSkippedCounter = metrics.NewCounter(`notifications_total{status="skipped"}`)
	notificationsFailedCounter  = metrics.NewCounter(`notifications_total{status="failed"}`)

	notificationsSentCounter = func(mode string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`notifications_total{status="sent",mode="` + mode + `"}`)
	}
	routeSourceCounter = func(source string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`notification_routes_resolved_total{source="` + source + `"}`)
	}
	routesChangedCounter = func(action string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`routes_changed_total{action="` + action + `"}`)
	}
)
