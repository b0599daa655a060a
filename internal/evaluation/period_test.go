package evaluation_test

import (
	"testing"
	"time"

	"hris-portal/internal/department"
	"hris-portal/internal/evaluation"
	evaluationerrors "hris-portal/internal/evaluation/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodFor(t *testing.T) {
	tests := []struct {
		name      string
		frequency department.EvaluationFrequency
		date      string
		wantKey   string
		wantStart string
		wantEnd   string
	}{
		{"annual", department.FrequencyAnnual, "2026-08-15", "2026", "2026-01-01", "2026-12-31"},
		{"first half boundary", department.FrequencySemiAnnual, "2026-06-30", "2026-H1", "2026-01-01", "2026-06-30"},
		{"second half", department.FrequencySemiAnnual, "2026-07-01", "2026-H2", "2026-07-01", "2026-12-31"},
		{"third quarter", department.FrequencyQuarterly, "2026-08-15", "2026-Q3", "2026-07-01", "2026-09-30"},
		{"first quarter leap year", department.FrequencyQuarterly, "2028-02-29", "2028-Q1", "2028-01-01", "2028-03-31"},
		{"unknown frequency is annual", department.EvaluationFrequency("MONTHLY"), "2026-03-01", "2026", "2026-01-01", "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := evaluation.PeriodFor(tt.frequency, date(tt.date))

			assert.Equal(t, tt.wantKey, p.Key())
			assert.Equal(t, tt.wantStart, p.Start().Format(time.DateOnly))
			assert.Equal(t, tt.wantEnd, p.End().Format(time.DateOnly))
			assert.True(t, p.Contains(date(tt.date)))
		})
	}
}

func TestParsePeriodKey(t *testing.T) {
	p, err := evaluation.ParsePeriodKey(department.FrequencyQuarterly, "2026-q2")
	require.NoError(t, err)
	assert.Equal(t, "2026-Q2", p.Key())
	assert.Equal(t, "2026-04-01", p.Start().Format(time.DateOnly))

	p, err = evaluation.ParsePeriodKey(department.FrequencySemiAnnual, "2025-H2")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", p.End().Format(time.DateOnly))

	p, err = evaluation.ParsePeriodKey(department.FrequencyAnnual, "2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, p.Year)

	invalid := []struct {
		frequency department.EvaluationFrequency
		key       string
	}{
		{department.FrequencyAnnual, "2026-Q1"},
		{department.FrequencyAnnual, "26"},
		{department.FrequencySemiAnnual, "2026"},
		{department.FrequencySemiAnnual, "2026-H3"},
		{department.FrequencySemiAnnual, "2026-Q1"},
		{department.FrequencyQuarterly, "2026-Q5"},
		{department.FrequencyQuarterly, "2026-Q0"},
		{department.FrequencyQuarterly, "abcd-Q1"},
	}
	for _, tt := range invalid {
		_, err := evaluation.ParsePeriodKey(tt.frequency, tt.key)
		assert.ErrorIs(t, err, evaluationerrors.ErrInvalidPeriodKey, "%s %s", tt.frequency, tt.key)
	}
}

func TestPeriod_Contains(t *testing.T) {
	p := evaluation.PeriodFor(department.FrequencyQuarterly, date("2026-05-10"))

	assert.True(t, p.Contains(time.Date(2026, 6, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(date("2026-07-01")))
	assert.False(t, p.Contains(date("2026-03-31")))
}
