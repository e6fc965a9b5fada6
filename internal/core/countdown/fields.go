package countdown

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unit identifies one of the H/M/S timer fields.
type Unit string

const (
	UnitHours   Unit = "HH"
	UnitMinutes Unit = "MM"
	UnitSeconds Unit = "SS"
)

// Units lists the fields in display order.
var Units = []Unit{UnitHours, UnitMinutes, UnitSeconds}

// Modulus returns the wrap-around bound of the unit.
func (unit Unit) Modulus() int {
	if unit == UnitHours {
		return 24
	}
	return 60
}

// Fields holds the timer input split into hours, minutes and seconds.
type Fields struct {
	Hours   int
	Minutes int
	Seconds int
}

// Get returns the value of one field.
func (fields Fields) Get(unit Unit) int {
	switch unit {
	case UnitHours:
		return fields.Hours
	case UnitMinutes:
		return fields.Minutes
	default:
		return fields.Seconds
	}
}

// Set stores value into one field, wrapped to the unit's range.
func (fields *Fields) Set(unit Unit, value int) {
	modulus := unit.Modulus()
	value %= modulus
	if value < 0 {
		value += modulus
	}
	switch unit {
	case UnitHours:
		fields.Hours = value
	case UnitMinutes:
		fields.Minutes = value
	default:
		fields.Seconds = value
	}
}

// Step moves one field by delta, wrapping at 24 hours or 60 minutes/seconds.
func (fields *Fields) Step(unit Unit, delta int) {
	fields.Set(unit, fields.Get(unit)+delta)
}

// Duration converts the fields to a duration.
func (fields Fields) Duration() time.Duration {
	return time.Duration(fields.Hours)*time.Hour +
		time.Duration(fields.Minutes)*time.Minute +
		time.Duration(fields.Seconds)*time.Second
}

// Format renders a field as two digits.
func Format(value int) string {
	return fmt.Sprintf("%02d", value)
}

// ParseField reads a user-typed field value. Anything that is not a
// non-negative number reads as zero.
func ParseField(text string) int {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
