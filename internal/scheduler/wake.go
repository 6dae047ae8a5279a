package scheduler

import "time"

const (
	MidnightWakeID = "midnight"
	RecheckWakeID  = "recheck"
)

// NextMidnight is the start of the calendar day after now in loc.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// MidnightWake fires a moment after the next local midnight so the new date
// is already in effect when the wake is handled.
func MidnightWake(now time.Time, loc *time.Location) Wake {
	return Wake{ID: MidnightWakeID, Reason: ReasonMidnight, At: NextMidnight(now, loc).Add(time.Second)}
}

func RecheckWake(now time.Time, every time.Duration) Wake {
	return Wake{ID: RecheckWakeID, Reason: ReasonRecheck, At: now.Add(every)}
}

// Successor is the wake that takes over once w has fired.
func Successor(w Wake, now time.Time, loc *time.Location, every time.Duration) Wake {
	if w.Reason == ReasonMidnight {
		return MidnightWake(now, loc)
	}
	return RecheckWake(now, every)
}
