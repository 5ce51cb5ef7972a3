package domain

import (
	"fmt"
	"time"
)

// GalleryDecision is the outcome of the reveal gate for one community.
// When denied, Countdown carries the human-readable time-remaining phrase
// ("3 days", "14 hours", "less than an hour"); it is empty when the
// community has no end date and therefore can never reveal.
type GalleryDecision struct {
	Allowed   bool
	Phase     Phase
	Remaining time.Duration
	Countdown string
}

// GalleryAccess decides whether a community's photos may be shown at now.
// Denials never render a partial gallery; the caller redirects and surfaces
// the countdown.
func GalleryAccess(c *Community, now time.Time, policy RevealPolicy) GalleryDecision {
	phase := c.PhaseAt(now)
	if c.Revealable(now, policy) {
		return GalleryDecision{Allowed: true, Phase: phase}
	}

	d := GalleryDecision{Phase: phase}
	if c.EndDate == nil {
		return d
	}
	rem := c.EndDate.Sub(now)
	if rem < 0 {
		rem = 0
	}
	d.Remaining = rem
	d.Countdown = FormatRemaining(rem)
	return d
}

// FormatRemaining renders a duration at decreasing granularity: whole days
// above 24h, whole hours above 1h, otherwise the literal phrase
// "less than an hour". Days and hours round up.
func FormatRemaining(d time.Duration) string {
	if d > 24*time.Hour {
		days := (d + 24*time.Hour - 1) / (24 * time.Hour)
		return fmt.Sprintf("%d days", days)
	}
	if d > time.Hour {
		hours := (d + time.Hour - 1) / time.Hour
		return fmt.Sprintf("%d hours", hours)
	}
	return "less than an hour"
}
