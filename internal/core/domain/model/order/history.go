package order

import (
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
)

// HistoryEntry is one record of a status log. Logs are append-only.
type HistoryEntry[S Status | ItemStatus] struct {
	Status   S
	At       time.Time
	Note     string
	Location *kernel.Location
	Actor    kernel.UUID
}

type (
	StatusHistoryEntry     = HistoryEntry[Status]
	ItemStatusHistoryEntry = HistoryEntry[ItemStatus]
)

func cloneLocation(l *kernel.Location) *kernel.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ActivityKind names an entry of the activity log.
type ActivityKind string

const (
	ActivityCreated        ActivityKind = "created"
	ActivityAssigned       ActivityKind = "assigned"
	ActivityStarted        ActivityKind = "started"
	ActivityCompleted      ActivityKind = "completed"
	ActivityCancelled      ActivityKind = "cancelled"
	ActivityFailed         ActivityKind = "failed"
	ActivityReopened       ActivityKind = "reopened"
	ActivityItemAdded      ActivityKind = "item_added"
	ActivityItemRemoved    ActivityKind = "item_removed"
	ActivityRouteUpdated   ActivityKind = "route_updated"
	ActivityRouteOptimized ActivityKind = "route_optimized"
	ActivityStopArrived    ActivityKind = "stop_arrived"
	ActivityProofRecorded  ActivityKind = "proof_of_delivery_recorded"
	ActivityCODRecorded    ActivityKind = "cod_payment_recorded"
	ActivityDeliveryFailed ActivityKind = "delivery_failed"
)

type ActivityEntry struct {
	Kind    ActivityKind
	Actor   kernel.UUID
	At      time.Time
	Details map[string]string
}

// TrackingTagStarted marks the observation recorded when the order starts.
const TrackingTagStarted = "started"

// TrackingLocation is one position observation. Speed and Accuracy are
// optional; Speed is in km/h, Accuracy in meters.
type TrackingLocation struct {
	Location  kernel.Location
	SpeedKmh  *float64
	Accuracy  *float64
	Timestamp time.Time
	Actor     kernel.UUID
	Tag       string
}
