package attendance

import "time"

// Policy holds the workday rules used to derive flags and hours.
type Policy struct {
	WorkdayStart string  // "08:00"
	WorkdayHours float64 // regular hours per day before overtime
}

// IsLate reports whether a check-in time is after the workday start on its day.
func (p Policy) IsLate(checkIn time.Time) bool {
	start, err := time.Parse("15:04", p.WorkdayStart)
	if err != nil {
		return false
	}
	threshold := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		start.Hour(), start.Minute(), 0, 0, checkIn.Location())
	return checkIn.After(threshold)
}

// WorkedHours returns regular and overtime hours for a closed record.
// Break time is excluded; hours beyond the regular workday count as overtime.
func (p Policy) WorkedHours(checkIn, checkOut time.Time, breakMinutes int) (worked, overtime float64) {
	if !checkOut.After(checkIn) {
		return 0, 0
	}
	worked = checkOut.Sub(checkIn).Hours() - float64(breakMinutes)/60
	if worked < 0 {
		worked = 0
	}
	if worked > p.WorkdayHours {
		overtime = worked - p.WorkdayHours
	}
	return worked, overtime
}

// IsEarlyDeparture reports whether a check-out closes the day short of the
// regular workday, measured from the actual check-in.
func (p Policy) IsEarlyDeparture(checkIn, checkOut time.Time, breakMinutes int) bool {
	worked, _ := p.WorkedHours(checkIn, checkOut, breakMinutes)
	return worked < p.WorkdayHours
}
