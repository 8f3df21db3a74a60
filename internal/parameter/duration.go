package parameter

import "fmt"

// Unit is a project duration unit.
type Unit string

const (
	Hours  Unit = "hours"
	Days   Unit = "days"
	Weeks  Unit = "weeks"
	Months Unit = "months"
)

var hoursPerUnit = map[Unit]float64{
	Hours:  1,
	Days:   8,
	Weeks:  40,
	Months: 160,
}

// ParseUnit validates a duration unit name.
func ParseUnit(raw string) (Unit, error) {
	u := Unit(raw)
	if _, ok := hoursPerUnit[u]; !ok {
		return "", fmt.Errorf("unknown duration unit %q", raw)
	}
	return u, nil
}

// DurationToHours converts value expressed in unit to working hours.
// An unknown unit contributes 0 hours.
func DurationToHours(value float64, unit Unit) float64 {
	return value * hoursPerUnit[unit]
}

// ConvertDuration converts value between duration units.
func ConvertDuration(value float64, from, to Unit) float64 {
	perTo, ok := hoursPerUnit[to]
	if !ok {
		return 0
	}
	return DurationToHours(value, from) / perTo
}
