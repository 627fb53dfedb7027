// Package eta tracks the expected arrival of entities that are not delivery
// orders themselves, such as inter-branch shipments.
package eta

import (
	"errors"
	"strings"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

// Change is one entry of the append-only ETA history.
type Change struct {
	Previous *time.Time
	Current  time.Time
	Actor    kernel.UUID
	At       time.Time
	Reason   string
}

// Schedule holds the current ETA of one entity and how it got there.
type Schedule struct {
	entityType string
	entityID   kernel.UUID
	eta        *time.Time
	history    []Change
	updatedAt  time.Time
	version    int64
}

// NewSchedule starts an empty schedule for the given entity.
func NewSchedule(entityType string, entityID kernel.UUID) (*Schedule, error) {
	entityType = strings.TrimSpace(entityType)
	var err error
	if entityType == "" {
		err = errs.NewValueIsRequiredError("entityType")
	}
	if e := entityID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("entityId", e))
	}
	if err != nil {
		return nil, err
	}
	return &Schedule{entityType: entityType, entityID: entityID}, nil
}

// RestoreSchedule rebuilds a schedule loaded from storage.
func RestoreSchedule(entityType string, entityID kernel.UUID, current *time.Time, history []Change, updatedAt time.Time, version int64) (*Schedule, error) {
	s, err := NewSchedule(entityType, entityID)
	if err != nil {
		return nil, err
	}
	s.eta, s.history, s.updatedAt, s.version = current, history, updatedAt, version
	return s, nil
}

func (s *Schedule) EntityType() string    { return s.entityType }
func (s *Schedule) EntityID() kernel.UUID { return s.entityID }
func (s *Schedule) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Schedule) Version() int64        { return s.version }
func (s *Schedule) SetVersion(v int64)    { s.version = v }

// ETA returns the current estimate, or nil if none was set yet.
func (s *Schedule) ETA() *time.Time {
	if s.eta == nil {
		return nil
	}
	t := *s.eta
	return &t
}

func (s *Schedule) History() []Change {
	out := make([]Change, len(s.history))
	copy(out, s.history)
	return out
}

// Update overwrites the ETA and appends the change to the history.
func (s *Schedule) Update(newETA time.Time, actor kernel.UUID, now time.Time, reason string) error {
	if newETA.IsZero() {
		return errs.NewValueIsRequiredError("eta")
	}
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	s.history = append(s.history, Change{
		Previous: s.ETA(),
		Current:  newETA,
		Actor:    actor,
		At:       now,
		Reason:   strings.TrimSpace(reason),
	})
	s.eta = &newETA
	s.updatedAt = now
	return nil
}
