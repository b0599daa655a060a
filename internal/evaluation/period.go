package evaluation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hris-portal/internal/department"
	evaluationerrors "hris-portal/internal/evaluation/errors"
)

// Period is one evaluation window of a department's frequency.
// Index is 1 for annual periods, 1-2 for halves and 1-4 for quarters.
type Period struct {
	Frequency department.EvaluationFrequency
	Year      int
	Index     int
}

func monthsPer(f department.EvaluationFrequency) int {
	switch f {
	case department.FrequencySemiAnnual:
		return 6
	case department.FrequencyQuarterly:
		return 3
	default:
		return 12
	}
}

// PeriodFor returns the period of the given frequency that contains date.
func PeriodFor(f department.EvaluationFrequency, date time.Time) Period {
	if !f.Valid() {
		f = department.FrequencyAnnual
	}
	months := monthsPer(f)
	return Period{
		Frequency: f,
		Year:      date.Year(),
		Index:     (int(date.Month())-1)/months + 1,
	}
}

// ParsePeriodKey parses "2026", "2026-H1" or "2026-Q3"; the key shape must match f.
func ParsePeriodKey(f department.EvaluationFrequency, key string) (Period, error) {
	if !f.Valid() {
		f = department.FrequencyAnnual
	}
	yearPart, suffix, hasSuffix := strings.Cut(strings.ToUpper(strings.TrimSpace(key)), "-")

	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return Period{}, evaluationerrors.ErrInvalidPeriodKey
	}

	p := Period{Frequency: f, Year: year, Index: 1}
	switch f {
	case department.FrequencyAnnual:
		if hasSuffix {
			return Period{}, evaluationerrors.ErrInvalidPeriodKey
		}
		return p, nil
	case department.FrequencySemiAnnual:
		p.Index, err = parseIndex(suffix, "H", 2)
	case department.FrequencyQuarterly:
		p.Index, err = parseIndex(suffix, "Q", 4)
	}
	if err != nil || !hasSuffix {
		return Period{}, evaluationerrors.ErrInvalidPeriodKey
	}
	return p, nil
}

func parseIndex(suffix, prefix string, max int) (int, error) {
	rest, ok := strings.CutPrefix(suffix, prefix)
	if !ok {
		return 0, evaluationerrors.ErrInvalidPeriodKey
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > max {
		return 0, evaluationerrors.ErrInvalidPeriodKey
	}
	return n, nil
}

func (p Period) Key() string {
	switch p.Frequency {
	case department.FrequencySemiAnnual:
		return fmt.Sprintf("%04d-H%d", p.Year, p.Index)
	case department.FrequencyQuarterly:
		return fmt.Sprintf("%04d-Q%d", p.Year, p.Index)
	default:
		return fmt.Sprintf("%04d", p.Year)
	}
}

// Start is the first day of the period in UTC.
func (p Period) Start() time.Time {
	month := time.Month((p.Index-1)*monthsPer(p.Frequency) + 1)
	return time.Date(p.Year, month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the period in UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, monthsPer(p.Frequency), -1)
}

func (p Period) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.Start()) && !d.After(p.End())
}
