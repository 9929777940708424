package leave

import (
	"errors"
	"time"
)

// WeekdayCount returns the number of Monday-Friday days in [start, end]
// inclusive. Weekends never count toward requested leave, so the range is
// walked day by day rather than subtracted.
func WeekdayCount(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count, nil
}

// CanTransition reports whether a request may move from one status to another.
// Only pending requests are decided; pending requests may also be cancelled
// by their owner.
func CanTransition(from, to string) bool {
	switch to {
	case StatusApproved, StatusRejected:
		return from == StatusPending
	case StatusCancelled:
		return from == StatusPending
	default:
		return false
	}
}
