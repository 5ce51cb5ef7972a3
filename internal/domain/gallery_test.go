package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGalleryAccess(t *testing.T) {
	start := mustTime(t, "2025-06-01T09:00:00Z")
	end := mustTime(t, "2025-06-01T23:00:00Z")
	c := &Community{ID: "c1", StartDate: tp(start), EndDate: tp(end)}

	t.Run("denied_while_active", func(t *testing.T) {
		d := GalleryAccess(c, mustTime(t, "2025-06-01T12:00:00Z"), RevealAfterEndOnly)
		assert.False(t, d.Allowed)
		assert.Equal(t, PhaseActive, d.Phase)
		assert.Equal(t, 11*time.Hour, d.Remaining)
	})

	t.Run("denied_while_upcoming", func(t *testing.T) {
		d := GalleryAccess(c, start.Add(-time.Hour), RevealAfterEndOnly)
		assert.False(t, d.Allowed)
		assert.Equal(t, PhaseUpcoming, d.Phase)
	})

	t.Run("granted_after_end", func(t *testing.T) {
		d := GalleryAccess(c, end.Add(time.Minute), RevealAfterEndOnly)
		assert.True(t, d.Allowed)
		assert.Equal(t, PhaseEnded, d.Phase)
		assert.Empty(t, d.Countdown)
	})

	t.Run("granted_during_with_live_policy", func(t *testing.T) {
		d := GalleryAccess(c, start.Add(time.Hour), RevealDuringOrAfter)
		assert.True(t, d.Allowed)
	})

	t.Run("no_end_date_denied_for_any_now", func(t *testing.T) {
		openEnded := &Community{ID: "c2", StartDate: tp(start)}
		for _, policy := range []RevealPolicy{RevealAfterEndOnly, RevealDuringOrAfter} {
			for _, now := range []time.Time{start.Add(-time.Hour), start, start.Add(time.Hour), end, end.Add(240 * time.Hour)} {
				d := GalleryAccess(openEnded, now, policy)
				assert.False(t, d.Allowed, "policy %v at %v", policy, now)
				assert.Empty(t, d.Countdown, "no countdown without an end date")
			}
		}
	})

	t.Run("unscheduled_denied", func(t *testing.T) {
		d := GalleryAccess(&Community{ID: "c3"}, start, RevealAfterEndOnly)
		assert.False(t, d.Allowed)
		assert.Equal(t, PhaseUnscheduled, d.Phase)
	})

	t.Run("countdown_thirty_minutes_out", func(t *testing.T) {
		d := GalleryAccess(c, mustTime(t, "2025-06-01T22:30:00Z"), RevealAfterEndOnly)
		assert.Equal(t, "less than an hour", d.Countdown)
	})

	t.Run("countdown_twenty_three_hours_out", func(t *testing.T) {
		d := GalleryAccess(c, end.Add(-23*time.Hour), RevealAfterEndOnly)
		assert.Equal(t, "23 hours", d.Countdown)
	})

	t.Run("countdown_three_days_out", func(t *testing.T) {
		d := GalleryAccess(c, end.Add(-71*time.Hour), RevealAfterEndOnly)
		assert.Equal(t, "3 days", d.Countdown)
	})
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "less than an hour"},
		{30 * time.Minute, "less than an hour"},
		{time.Hour, "less than an hour"},
		{61 * time.Minute, "2 hours"},
		{2 * time.Hour, "2 hours"},
		{23 * time.Hour, "23 hours"},
		{24 * time.Hour, "24 hours"},
		{24*time.Hour + time.Minute, "2 days"},
		{48 * time.Hour, "2 days"},
		{71 * time.Hour, "3 days"},
		{72 * time.Hour, "3 days"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRemaining(tc.d), "d=%v", tc.d)
	}
}
