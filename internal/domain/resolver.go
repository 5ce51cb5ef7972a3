package domain

import "time"

// ResolveActiveCommunity picks the single community that newly captured
// photos attach to. Rules:
//   - only communities whose window is active at now are candidates
//   - zero candidates: typed error, the capture must be refused out loud
//   - one candidate: that one
//   - several: the one ending soonest wins; candidates without an end date
//     are excluded from the tie-break (ties on end date fall back to id so
//     the result stays deterministic)
//
// Pure function of (memberships, now); callers sample now exactly once and
// never reuse a previous resolution.
func ResolveActiveCommunity(memberships []Membership, now time.Time) (*Community, error) {
	var active []*Community
	for i := range memberships {
		c := memberships[i].Community
		if c == nil || !c.CaptureEligible(now) {
			continue
		}
		active = append(active, c)
	}

	switch len(active) {
	case 0:
		return nil, ErrInvalidState("no community is active right now, photos have nowhere to go")
	case 1:
		return active[0], nil
	}

	var best *Community
	for _, c := range active {
		if c.EndDate == nil {
			continue
		}
		if best == nil ||
			c.EndDate.Before(*best.EndDate) ||
			(c.EndDate.Equal(*best.EndDate) && c.ID < best.ID) {
			best = c
		}
	}
	if best == nil {
		// every candidate is open-ended; there is no "most urgent" event
		return nil, ErrInvalidState("multiple open-ended communities are active, cannot pick one")
	}
	return best, nil
}
