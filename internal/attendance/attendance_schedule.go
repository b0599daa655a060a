package attendance

import (
	"fmt"
	"time"

	"hris-portal/internal/shared/config"
)

// Schedule is the company work day, resolved to minutes after midnight in Location.
type Schedule struct {
	Start    int
	End      int
	Grace    int
	Location *time.Location
}

func NewSchedule(cfg config.Schedule) (Schedule, error) {
	start, err := parseClock(cfg.WorkStart)
	if err != nil {
		return Schedule{}, fmt.Errorf("work start: %w", err)
	}
	end, err := parseClock(cfg.WorkEnd)
	if err != nil {
		return Schedule{}, fmt.Errorf("work end: %w", err)
	}
	if end <= start {
		return Schedule{}, fmt.Errorf("work end %s must be after start %s", cfg.WorkEnd, cfg.WorkStart)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Schedule{}, fmt.Errorf("timezone: %w", err)
	}
	return Schedule{Start: start, End: end, Grace: cfg.LateGraceMinutes, Location: loc}, nil
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (s Schedule) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// WorkDate is the calendar day t falls on in the schedule's timezone, as a UTC midnight.
func (s Schedule) WorkDate(t time.Time) time.Time {
	y, m, d := t.In(s.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// At returns the instant minutes-after-midnight on workDate in the schedule's timezone.
func (s Schedule) At(workDate time.Time, minutes int) time.Time {
	y, m, d := workDate.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, s.loc())
}

// ParseTimeOfDay resolves "HH:MM" on workDate.
func (s Schedule) ParseTimeOfDay(workDate time.Time, v string) (time.Time, error) {
	minutes, err := parseClock(v)
	if err != nil {
		return time.Time{}, err
	}
	return s.At(workDate, minutes), nil
}

// Classify returns PRESENT or LATE for a clock-in. Lateness is counted from the
// scheduled start once the grace period has passed.
func (s Schedule) Classify(workDate, clockIn time.Time) (string, int) {
	start := s.At(workDate, s.Start)
	if !clockIn.After(start.Add(time.Duration(s.Grace) * time.Minute)) {
		return StatusPresent, 0
	}
	return StatusLate, int(clockIn.Sub(start) / time.Minute)
}

// Undertime is how many minutes before the scheduled end the employee left.
func (s Schedule) Undertime(workDate, clockOut time.Time) int {
	end := s.At(workDate, s.End)
	if !clockOut.Before(end) {
		return 0
	}
	return int(end.Sub(clockOut) / time.Minute)
}
