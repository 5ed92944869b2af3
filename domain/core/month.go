package core

import (
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM". Keys compare
// chronologically under ordinary string ordering.
type MonthKey string

// MonthKeyOf returns the month bucket containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// MonthKeyFromDate truncates an ISO date string ("YYYY-MM-DD...") to its
// month bucket. Strings shorter than seven characters yield an empty key.
func MonthKeyFromDate(date string) MonthKey {
	if len(date) < 7 {
		return ""
	}
	return MonthKey(date[:7])
}

// FirstDay returns midnight UTC on the first day of the month. Invalid keys
// return the zero time.
func (m MonthKey) FirstDay() time.Time {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Next returns the following calendar month.
func (m MonthKey) Next() MonthKey {
	return MonthKeyOf(m.FirstDay().AddDate(0, 1, 0))
}

// Before reports whether m precedes u chronologically.
func (m MonthKey) Before(u MonthKey) bool {
	return m < u
}

// IsValid reports whether the key parses as "YYYY-MM".
func (m MonthKey) IsValid() bool {
	_, err := time.Parse("2006-01", string(m))
	return err == nil
}

// String returns the string representation
func (m MonthKey) String() string {
	return string(m)
}
