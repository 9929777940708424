package payroll

import (
	"fmt"
	"time"
)

// Period identifies one billing month. All attendance and leave aggregation
// is scoped to the calendar month it names.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod accepts YYYY-MM or YYYY-MM-DD; a day component is ignored.
func ParsePeriod(value string) (Period, error) {
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
	}
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
	}
	p := Period{Year: parsed.Year(), Month: parsed.Month()}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the billing period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}
	if p.Year < 2000 || p.Year > 2100 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// Start is the first day of the month at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next is the first day of the following month, the exclusive upper bound.
func (p Period) Next() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// DaysInMonth is the nominal divisor for the pro-rated daily amount.
func (p Period) DaysInMonth() int {
	return p.Next().AddDate(0, 0, -1).Day()
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) String() string {
	return p.Start().Format("2006-01")
}
