package domain

import (
	"strings"
	"time"
)

// Dutch weekday names indexed by time.Weekday.
var dutchWeekdays = [...]string{
	time.Sunday:    "Zondag",
	time.Monday:    "Maandag",
	time.Tuesday:   "Dinsdag",
	time.Wednesday: "Woensdag",
	time.Thursday:  "Donderdag",
	time.Friday:    "Vrijdag",
	time.Saturday:  "Zaterdag",
}

var dayOrder = map[string]int{
	"maandag":   1,
	"dinsdag":   2,
	"woensdag":  3,
	"donderdag": 4,
	"vrijdag":   5,
	"zaterdag":  6,
	"zondag":    7,
}

// DutchWeekday returns the capitalized Dutch name for wd.
func DutchWeekday(wd time.Weekday) string {
	return dutchWeekdays[wd]
}

// IsDutchDayName reports whether s is exactly one of the capitalized day names.
func IsDutchDayName(s string) bool {
	for _, d := range dutchWeekdays {
		if d == s {
			return true
		}
	}
	return false
}

// DayRank orders visit-day labels Maandag..Zondag. Labels such as "Dinsdag 14-02"
// rank by their first word; anything unrecognized ranks last.
func DayRank(day string) int {
	fields := strings.Fields(strings.ToLower(day))
	if len(fields) == 0 {
		return 999
	}
	first := fields[0]
	if len(first) > 9 {
		first = first[:9]
	}
	for name, rank := range dayOrder {
		if strings.Contains(first, name) {
			return rank
		}
	}
	return 999
}
