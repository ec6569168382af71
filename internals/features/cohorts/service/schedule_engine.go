// file: internals/features/cohorts/service/schedule_engine.go
package service

import (
	"errors"
	"time"
)

// DefaultTeachingDays is the rolling weekly pattern: Mon → Wed → Fri → Mon (next week).
var DefaultTeachingDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

var ErrNoSessions = errors.New("no sessions to schedule")

// PlannedSession is one computed slot of a cohort schedule.
type PlannedSession struct {
	SessionNumber int
	Date          time.Time
	Fixed         bool
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func patternIndexOf(pattern []time.Weekday, d time.Weekday) int {
	for i, w := range pattern {
		if w == d {
			return i
		}
	}
	return -1
}

// sanitizePattern strips Sunday and falls back to the default pattern when
// nothing usable remains. Sunday is never a valid landing day, no exception.
func sanitizePattern(pattern []time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 0, len(pattern))
	for _, w := range pattern {
		if w == time.Sunday {
			continue
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return DefaultTeachingDays
	}
	return out
}

// normalizeStart walks the start date onto the pattern:
// Sunday deflects one day forward to Monday; any other off-pattern day
// advances day by day, re-deflecting around Sunday if the walk crosses it.
func normalizeStart(start time.Time, pattern []time.Weekday) (time.Time, int) {
	cur := dateOnly(start)
	if cur.Weekday() == time.Sunday {
		cur = cur.AddDate(0, 0, 1)
	}
	for patternIndexOf(pattern, cur.Weekday()) == -1 {
		cur = cur.AddDate(0, 0, 1)
		if cur.Weekday() == time.Sunday {
			cur = cur.AddDate(0, 0, 1)
		}
	}
	return cur, patternIndexOf(pattern, cur.Weekday())
}

// advance computes the next slot in the weekly cycle: the next calendar date
// strictly after cur whose weekday is the following pattern entry (same
// weekday next week when cur already sits on it). A Sunday landing is forced
// one day forward to the first pattern slot.
func advance(cur time.Time, idx int, pattern []time.Weekday) (time.Time, int) {
	nextIdx := (idx + 1) % len(pattern) // idx == -1 (off-pattern fixed date) rolls to slot 0
	if idx < 0 {
		nextIdx = 0
	}
	target := pattern[nextIdx]

	delta := (int(target) - int(cur.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	next := cur.AddDate(0, 0, delta)

	if next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
		nextIdx = 0
	}
	return next, nextIdx
}

// PlanSchedule assigns a date to every session number (ascending order
// expected) starting from startDate. fixedDates entries are honored verbatim
// without weekday validation (caller-trusted); after a pinned session the
// rolling pattern resumes from the pinned date.
func PlanSchedule(sessionNumbers []int, startDate time.Time, pattern []time.Weekday, fixedDates map[int]time.Time) ([]PlannedSession, error) {
	if len(sessionNumbers) == 0 {
		return nil, ErrNoSessions
	}
	pattern = sanitizePattern(pattern)

	cur, idx := normalizeStart(startDate, pattern)

	plan := make([]PlannedSession, 0, len(sessionNumbers))
	for _, n := range sessionNumbers {
		if fd, ok := fixedDates[n]; ok {
			pinned := dateOnly(fd)
			plan = append(plan, PlannedSession{SessionNumber: n, Date: pinned, Fixed: true})
			cur, idx = advance(pinned, patternIndexOf(pattern, pinned.Weekday()), pattern)
			continue
		}
		plan = append(plan, PlannedSession{SessionNumber: n, Date: cur})
		cur, idx = advance(cur, idx, pattern)
	}
	return plan, nil
}
