package evaluation

import (
	"fmt"
	"math"
	"slices"
	"strings"

	evaluationerrors "hris-portal/internal/evaluation/errors"
)

const (
	MinScore = 1.0
	MaxScore = 5.0

	MaxWorkFunctions = 10
)

const (
	CriterionInitiative    = "INITIATIVE"
	CriterionTeamwork      = "TEAMWORK"
	CriterionCommunication = "COMMUNICATION"
	CriterionIntegrity     = "INTEGRITY"
	CriterionAdaptability  = "ADAPTABILITY"
)

// Criteria lists the work attitude criteria in report order.
var Criteria = []string{
	CriterionInitiative,
	CriterionTeamwork,
	CriterionCommunication,
	CriterionIntegrity,
	CriterionAdaptability,
}

const (
	AdjectivalOutstanding      = "OUTSTANDING"
	AdjectivalVerySatisfactory = "VERY_SATISFACTORY"
	AdjectivalSatisfactory     = "SATISFACTORY"
	AdjectivalUnsatisfactory   = "UNSATISFACTORY"
	AdjectivalPoor             = "POOR"
)

const (
	latePenalty      = 0.10
	undertimePenalty = 0.10
	absentPenalty    = 0.50

	supervisorShare = 0.60
	coworkerShare   = 0.40
)

// Weights is the share each component contributes to the final rating.
type Weights struct {
	Attendance   float64
	Attitude     float64
	WorkAttitude float64
	WorkFunction float64
}

var DefaultWeights = Weights{
	Attendance:   0.20,
	Attitude:     0.20,
	WorkAttitude: 0.20,
	WorkFunction: 0.40,
}

// Validate rejects negative weights and weights that do not sum to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Attendance, w.Attitude, w.WorkAttitude, w.WorkFunction} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("evaluation weights must be non-negative: %+v", w)
		}
	}
	if sum := w.Attendance + w.Attitude + w.WorkAttitude + w.WorkFunction; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("evaluation weights must sum to 1, got %g", sum)
	}
	return nil
}

type AttendanceFigures struct {
	Late      int
	Absent    int
	Undertime int
}

type WorkFunctionScore struct {
	Name       string
	Quality    float64
	Efficiency float64
}

type Rubric struct {
	Attendance         AttendanceFigures
	SupervisorAttitude float64
	CoworkerAttitude   float64
	WorkAttitude       map[string]float64
	WorkFunctions      []WorkFunctionScore
}

type Result struct {
	AttendanceRating   float64
	AttitudeRating     float64
	WorkAttitudeRating float64
	WorkFunctionRating float64
	FinalRating        float64
	Adjectival         string
}

// Validate checks score ranges, the criterion set and the work function list.
func (r Rubric) Validate() error {
	a := r.Attendance
	if a.Late < 0 || a.Absent < 0 || a.Undertime < 0 {
		return evaluationerrors.ErrNegativeAttendance
	}
	if !inRange(r.SupervisorAttitude) || !inRange(r.CoworkerAttitude) {
		return evaluationerrors.ErrScoreOutOfRange
	}

	for criterion := range r.WorkAttitude {
		if !slices.Contains(Criteria, criterion) {
			return evaluationerrors.ErrUnknownCriterion
		}
	}
	for _, criterion := range Criteria {
		score, ok := r.WorkAttitude[criterion]
		if !ok {
			return evaluationerrors.ErrMissingCriterion
		}
		if !inRange(score) {
			return evaluationerrors.ErrScoreOutOfRange
		}
	}

	if len(r.WorkFunctions) == 0 || len(r.WorkFunctions) > MaxWorkFunctions {
		return evaluationerrors.ErrWorkFunctionCount
	}
	seen := make(map[string]struct{}, len(r.WorkFunctions))
	for _, fn := range r.WorkFunctions {
		name := strings.ToLower(strings.TrimSpace(fn.Name))
		if name == "" {
			return evaluationerrors.ErrWorkFunctionCount
		}
		if _, dup := seen[name]; dup {
			return evaluationerrors.ErrDuplicateWorkFunction
		}
		seen[name] = struct{}{}
		if !inRange(fn.Quality) || !inRange(fn.Efficiency) {
			return evaluationerrors.ErrScoreOutOfRange
		}
	}
	return nil
}

// Compute validates the rubric and aggregates it into a final rating.
// Component ratings are rounded for display; the final rating is computed
// from the unrounded components and rounded once.
func Compute(r Rubric, w Weights) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	if err := w.Validate(); err != nil {
		return Result{}, err
	}

	attendance := AttendanceRating(r.Attendance)
	attitude := supervisorShare*r.SupervisorAttitude + coworkerShare*r.CoworkerAttitude

	var sum float64
	for _, criterion := range Criteria {
		sum += r.WorkAttitude[criterion]
	}
	workAttitude := sum / float64(len(Criteria))

	sum = 0
	for _, fn := range r.WorkFunctions {
		sum += (fn.Quality + fn.Efficiency) / 2
	}
	workFunction := sum / float64(len(r.WorkFunctions))

	final := round2(w.Attendance*attendance +
		w.Attitude*attitude +
		w.WorkAttitude*workAttitude +
		w.WorkFunction*workFunction)

	return Result{
		AttendanceRating:   round2(attendance),
		AttitudeRating:     round2(attitude),
		WorkAttitudeRating: round2(workAttitude),
		WorkFunctionRating: round2(workFunction),
		FinalRating:        final,
		Adjectival:         Adjectival(final),
	}, nil
}

// AttendanceRating starts at 5 and loses points per incident, never below 1.
func AttendanceRating(a AttendanceFigures) float64 {
	rating := MaxScore -
		latePenalty*float64(a.Late) -
		undertimePenalty*float64(a.Undertime) -
		absentPenalty*float64(a.Absent)
	return math.Max(MinScore, rating)
}

func Adjectival(rating float64) string {
	switch {
	case rating >= 4.50:
		return AdjectivalOutstanding
	case rating >= 3.50:
		return AdjectivalVerySatisfactory
	case rating >= 2.50:
		return AdjectivalSatisfactory
	case rating >= 1.50:
		return AdjectivalUnsatisfactory
	default:
		return AdjectivalPoor
	}
}

func inRange(v float64) bool {
	return v >= MinScore && v <= MaxScore
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
