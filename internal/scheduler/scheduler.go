// Package scheduler decides whether a showtime may be admitted into the
// schedule of its theater.
package scheduler

import (
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
)

type Scheduler struct {
	validator *validator.Validate
}

func New(validator *validator.Validate) *Scheduler {
	return &Scheduler{
		validator: validator,
	}
}

// Validate runs the field checks of a candidate showtime. It must be called
// before any existence or overlap check.
func (s *Scheduler) Validate(showtime domain.Showtime) error {
	return appvalidator.Check(s.validator, showtime)
}

// CheckOverlap reports whether candidate collides with any showtime in
// existing, which must hold every showtime recorded for the candidate's
// theater. Intervals are closed: a showtime starting at the exact instant
// another one ends overlaps it.
//
// Only the candidate's endpoints are tested against each existing interval, so
// a candidate that strictly contains an existing showtime is not reported.
func CheckOverlap(candidate domain.Showtime, existing []domain.Showtime) bool {
	for _, e := range existing {
		if e.ID == candidate.ID {
			continue
		}

		startsInside := !e.StartTime.After(candidate.StartTime) && !candidate.StartTime.After(e.EndTime)
		endsInside := !e.StartTime.After(candidate.EndTime) && !candidate.EndTime.After(e.EndTime)

		if startsInside || endsInside {
			return true
		}
	}

	return false
}

// Admit returns the callback a store runs inside the theater's critical
// section before writing candidate.
func (s *Scheduler) Admit(candidate domain.Showtime) domain.AdmitFunc {
	return func(existing []domain.Showtime) error {
		if CheckOverlap(candidate, existing) {
			return domain.Conflict(
				"The showtime overlaps with an existing schedule for the same theater. Please select a different time.",
				domain.ErrShowtimeOverlap,
			)
		}

		return nil
	}
}
