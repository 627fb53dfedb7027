package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

const scheduleTimeLayout = "15:04"

// Schedule is the planned delivery day and, optionally, the start time
// (HH:MM, UTC) on that day.
type Schedule struct {
	Date time.Time
	Time string
}

// NewSchedule normalizes date to midnight UTC and validates the time of day.
func NewSchedule(date time.Time, timeOfDay string) (Schedule, error) {
	if date.IsZero() {
		return Schedule{}, errs.NewValueIsRequiredError("scheduledDate")
	}
	timeOfDay = strings.TrimSpace(timeOfDay)
	if timeOfDay != "" {
		if _, err := time.Parse(scheduleTimeLayout, timeOfDay); err != nil {
			return Schedule{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("scheduledTime %q", timeOfDay), err)
		}
	}
	return Schedule{Date: truncateToDay(date), Time: timeOfDay}, nil
}

func (s Schedule) validate() error {
	_, err := NewSchedule(s.Date, s.Time)
	return err
}

// StartsAt returns the scheduled start instant; midnight when no time is set.
func (s Schedule) StartsAt() time.Time {
	if s.Time == "" {
		return s.Date
	}
	clock, err := time.Parse(scheduleTimeLayout, s.Time)
	if err != nil {
		return s.Date
	}
	return s.Date.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

// BranchRef points at the dispatching branch. Code is the two-letter code
// used in order numbers.
type BranchRef struct {
	ID   kernel.UUID
	Code string
}

// Assignment is the crew (and optionally a new schedule) given to an order.
type Assignment struct {
	Vehicle  kernel.UUID
	Driver   kernel.UUID
	Helper   *kernel.UUID
	Schedule *Schedule
}

func (a Assignment) validate() error {
	var err error
	if e := a.Vehicle.Validate(); e != nil {
		err = errs.NewValueIsRequiredErrorWithCause("vehicle", e)
	}
	if e := a.Driver.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("driver", e))
	}
	if a.Helper != nil {
		if e := a.Helper.Validate(); e != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("helper", e))
		}
	}
	if a.Schedule != nil {
		err = errors.Join(err, a.Schedule.validate())
	}
	return err
}
