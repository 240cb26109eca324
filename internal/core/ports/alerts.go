package ports

import (
	"context"
	"time"
)

// AlertKind classifies operator alerts.
type AlertKind string

const (
	AlertNegativeStock AlertKind = "NegativeStock"
	AlertHookFailure   AlertKind = "HookFailure"
	AlertLedgerDrift   AlertKind = "LedgerDrift"
)

// Alert is a business condition an operator must look at. Alerts never
// block or undo the operation that raised them.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// AlertNotifier publishes alerts to the operator channel. Delivery is best
// effort, so Notify has no error result.
type AlertNotifier interface {
	Notify(ctx context.Context, alert Alert)
}

// AlertReader lists the most recent alerts, newest first.
type AlertReader interface {
	Recent(ctx context.Context, limit int) ([]Alert, error)
}
