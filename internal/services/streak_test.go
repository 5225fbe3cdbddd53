package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func TestNextStreak(t *testing.T) {
	now := at("2026-10-19T09:00:00Z")

	tests := []struct {
		name   string
		streak int
		last   *time.Time
		want   int
	}{
		{"first completion", 0, nil, 1},
		{"same day keeps streak", 4, ptr(at("2026-10-19T07:00:00Z")), 4},
		{"same day with zero streak", 0, ptr(at("2026-10-19T07:00:00Z")), 1},
		{"yesterday increments", 4, ptr(at("2026-10-18T23:59:00Z")), 5},
		{"two days ago resets", 9, ptr(at("2026-10-17T10:00:00Z")), 1},
		{"long gap resets", 30, ptr(at("2026-09-01T10:00:00Z")), 1},
		{"future last completion keeps streak", 5, ptr(at("2026-10-21T09:00:00Z")), 5},
		{"future last completion with zero streak", 0, ptr(at("2026-10-20T09:00:00Z")), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, completed := NextStreak(tc.streak, tc.last, now, time.UTC)
			assert.Equal(t, tc.want, got)
			assert.True(t, completed)
		})
	}
}

func TestNextStreak_UsesCalendarDaysInLocation(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima") // UTC-5
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 03:00Z on the 19th is still the 18th in Lima, so a completion at
	// 02:00Z on the 18th (17th in Lima) was "yesterday".
	last := at("2026-10-18T02:00:00Z")
	now := at("2026-10-19T03:00:00Z")

	got, _ := NextStreak(2, &last, now, lima)
	assert.Equal(t, 3, got)

	// Fewer than 24 hours apart but two calendar days apart in UTC.
	got, _ = NextStreak(2, ptr(at("2026-10-17T23:30:00Z")), at("2026-10-19T00:10:00Z"), time.UTC)
	assert.Equal(t, 1, got)
}

func TestDecayStreak(t *testing.T) {
	now := at("2026-10-19T09:00:00Z")

	tests := []struct {
		name          string
		streak        int
		completed     bool
		last          *time.Time
		wantStreak    int
		wantCompleted bool
	}{
		{"never completed", 0, false, nil, 0, false},
		{"completed today untouched", 3, true, ptr(at("2026-10-19T06:00:00Z")), 3, true},
		{"completed yesterday clears flag", 3, true, ptr(at("2026-10-18T06:00:00Z")), 3, false},
		{"missed a day resets streak", 3, true, ptr(at("2026-10-17T06:00:00Z")), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			streak, completed := DecayStreak(tc.streak, tc.completed, tc.last, now, time.UTC)
			assert.Equal(t, tc.wantStreak, streak)
			assert.Equal(t, tc.wantCompleted, completed)
		})
	}
}
