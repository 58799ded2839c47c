package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Schedule is the set of weekdays a habit is scheduled on. It is kept
// sorted and deduplicated by Normalize; use Contains for membership.
type Schedule []time.Weekday

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseSchedule parses a comma-separated list of weekdays. Names may be
// short ("mon") or full ("monday"), case-insensitive, or numeric
// (0=Sunday, 6=Saturday). The result is normalized.
func ParseSchedule(s string) (Schedule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty schedule")
	}
	if strings.EqualFold(strings.TrimSpace(s), "daily") {
		return EveryDay(), nil
	}

	var sched Schedule
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			sched = append(sched, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		sched = append(sched, time.Weekday(num))
	}
	return sched.Normalize(), nil
}

// EveryDay returns a schedule covering all seven weekdays.
func EveryDay() Schedule {
	return Schedule{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// Normalize returns a sorted copy with duplicates removed.
func (s Schedule) Normalize() Schedule {
	seen := make(map[time.Weekday]bool, len(s))
	var out Schedule
	for _, wd := range s {
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether wd is part of the schedule.
func (s Schedule) Contains(wd time.Weekday) bool {
	for _, d := range s {
		if d == wd {
			return true
		}
	}
	return false
}

// String renders the schedule as comma-separated short names ("mon,wed").
func (s Schedule) String() string {
	if len(s) == 7 {
		return "daily"
	}
	var days []string
	for _, wd := range s {
		days = append(days, strings.ToLower(wd.String()[:3]))
	}
	return strings.Join(days, ",")
}
