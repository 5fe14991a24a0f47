package rules

import (
	"errors"
	"time"
)

var ErrInvalidBirthdate = errors.New("invalid birthdate")

const birthdateLayout = "2006-01-02"

// Age returns whole years between birthdate and today using calendar
// month/day comparison, so it stays correct across leap years. A day-count
// division would drift around Feb 29.
func Age(birthdate, today time.Time) int {
	birthdate = birthdate.UTC()
	today = today.UTC()

	years := today.Year() - birthdate.Year()
	if today.Month() < birthdate.Month() ||
		(today.Month() == birthdate.Month() && today.Day() < birthdate.Day()) {
		years--
	}
	return years
}

// ParseBirthdate parses a YYYY-MM-DD calendar date. Callers must propagate
// ErrInvalidBirthdate instead of defaulting an age.
func ParseBirthdate(value string) (time.Time, error) {
	parsed, err := time.Parse(birthdateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidBirthdate
	}
	return parsed.UTC(), nil
}
