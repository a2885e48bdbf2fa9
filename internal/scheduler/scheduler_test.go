package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/metinatakli/popcorn-palace/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2095, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func showtime(id int64, start, end time.Time) domain.Showtime {
	return domain.Showtime{
		ID:        id,
		MovieID:   1,
		Theater:   "Sample Theater",
		StartTime: start,
		EndTime:   end,
		Price:     decimal.NewFromFloat(20.2),
	}
}

func TestCheckOverlap(t *testing.T) {
	existing := []domain.Showtime{showtime(1, at(10, 0), at(12, 0))}

	tests := []struct {
		name      string
		candidate domain.Showtime
		existing  []domain.Showtime
		want      bool
	}{
		{
			name:      "empty theater admits anything",
			candidate: showtime(0, at(10, 0), at(12, 0)),
			existing:  nil,
			want:      false,
		},
		{
			name:      "starting exactly when another ends overlaps",
			candidate: showtime(0, at(12, 0), at(13, 0)),
			existing:  existing,
			want:      true,
		},
		{
			name:      "ending exactly when another starts overlaps",
			candidate: showtime(0, at(8, 0), at(10, 0)),
			existing:  existing,
			want:      true,
		},
		{
			name:      "disjoint later slot is free",
			candidate: showtime(0, at(13, 0), at(14, 0)),
			existing:  existing,
			want:      false,
		},
		{
			name:      "disjoint earlier slot is free",
			candidate: showtime(0, at(7, 0), at(9, 59)),
			existing:  existing,
			want:      false,
		},
		{
			name:      "start inside existing interval",
			candidate: showtime(0, at(11, 0), at(13, 0)),
			existing:  existing,
			want:      true,
		},
		{
			name:      "end inside existing interval",
			candidate: showtime(0, at(9, 0), at(11, 0)),
			existing:  existing,
			want:      true,
		},
		{
			name:      "candidate inside existing interval",
			candidate: showtime(0, at(10, 30), at(11, 30)),
			existing:  existing,
			want:      true,
		},
		{
			name:      "candidate containing existing interval is not detected",
			candidate: showtime(0, at(9, 0), at(13, 0)),
			existing:  existing,
			want:      false,
		},
		{
			name:      "showtime does not collide with itself",
			candidate: showtime(1, at(10, 30), at(12, 30)),
			existing:  existing,
			want:      false,
		},
		{
			name:      "updated showtime still collides with others",
			candidate: showtime(2, at(11, 0), at(12, 30)),
			existing:  append(existing, showtime(2, at(15, 0), at(17, 0))),
			want:      true,
		},
		{
			name:      "instants in different zones are compared by time",
			candidate: showtime(0, at(12, 0).In(time.FixedZone("UTC+3", 3*3600)), at(14, 0)),
			existing:  existing,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckOverlap(tt.candidate, tt.existing))
		})
	}
}

func TestValidate(t *testing.T) {
	s := New(validator.NewValidator())

	tests := []struct {
		name       string
		mutate     func(*domain.Showtime)
		wantField  string
		wantIssue  string
		wantPassed bool
	}{
		{
			name:       "valid showtime",
			mutate:     func(*domain.Showtime) {},
			wantPassed: true,
		},
		{
			name:       "zero price is allowed",
			mutate:     func(st *domain.Showtime) { st.Price = decimal.Zero },
			wantPassed: true,
		},
		{
			name:       "movie id is left to the existence check",
			mutate:     func(st *domain.Showtime) { st.MovieID = -7 },
			wantPassed: true,
		},
		{
			name:      "price too large for storage",
			mutate:    func(st *domain.Showtime) { st.Price = decimal.NewFromInt(100_000_000) },
			wantField: "price",
			wantIssue: validator.ErrMoney,
		},
		{
			name:      "price with sub-cent precision",
			mutate:    func(st *domain.Showtime) { st.Price = decimal.RequireFromString("50.255") },
			wantField: "price",
			wantIssue: validator.ErrMoney,
		},
		{
			name:      "empty theater",
			mutate:    func(st *domain.Showtime) { st.Theater = "" },
			wantField: "theater",
			wantIssue: validator.ErrRequired,
		},
		{
			name:      "missing start time",
			mutate:    func(st *domain.Showtime) { st.StartTime = time.Time{} },
			wantField: "startTime",
			wantIssue: validator.ErrRequired,
		},
		{
			name:      "missing end time",
			mutate:    func(st *domain.Showtime) { st.EndTime = time.Time{} },
			wantField: "endTime",
			wantIssue: validator.ErrRequired,
		},
		{
			name:      "end equal to start",
			mutate:    func(st *domain.Showtime) { st.EndTime = st.StartTime },
			wantField: "endTime",
			wantIssue: "must be after startTime",
		},
		{
			name:      "negative price",
			mutate:    func(st *domain.Showtime) { st.Price = decimal.NewFromFloat(-0.5) },
			wantField: "price",
			wantIssue: "must not be less than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := showtime(0, at(10, 0), at(12, 0))
			tt.mutate(&candidate)

			err := s.Validate(candidate)
			if tt.wantPassed {
				assert.NoError(t, err)
				return
			}

			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr), "expected validation error, got %v", err)
			assert.Contains(t, validationErr.Issues, domain.FieldIssue{Field: tt.wantField, Issue: tt.wantIssue})
			assert.Equal(t, domain.KindValidationFailed, domain.KindOf(err))
		})
	}
}

func TestAdmit(t *testing.T) {
	s := New(validator.NewValidator())
	existing := []domain.Showtime{showtime(1, at(10, 0), at(12, 0))}

	err := s.Admit(showtime(0, at(12, 0), at(13, 0)))(existing)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrShowtimeOverlap)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	assert.NoError(t, s.Admit(showtime(0, at(13, 0), at(14, 0)))(existing))
}
