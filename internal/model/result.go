package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxWeeklyMinutes caps any staff member's assigned time at 40 hours.
const MaxWeeklyMinutes = 2400

type SolverStatus string

const (
	StatusOptimal    SolverStatus = "optimal"
	StatusFeasible   SolverStatus = "feasible"
	StatusInfeasible SolverStatus = "infeasible"
	StatusTimeout    SolverStatus = "timeout"
	StatusError      SolverStatus = "error"
)

type AssignmentKind string

const (
	KindDoubleStaffing AssignmentKind = "double_staffing"
	KindOneToOne       AssignmentKind = "one_to_one"
	KindLeisure        AssignmentKind = "leisure"
)

// Assignment is one merged block of care: one staff member with one student
// on one weekday over a contiguous time range. StudentID is empty only for
// class-level coverage, which this engine does not produce yet.
type Assignment struct {
	ID               uuid.UUID      `json:"id"`
	StaffID          StaffID        `json:"staffId"`
	StudentID        StudentID      `json:"studentId,omitempty"`
	Weekday          int            `json:"weekday"`
	Start            Minutes        `json:"start"`
	End              Minutes        `json:"end"`
	Kind             AssignmentKind `json:"kind"`
	IsManualOverride bool           `json:"isManualOverride"`
}

// ScheduleResult is the outcome of one week's generation.
type ScheduleResult struct {
	ID                 uuid.UUID     `json:"id"`
	WeekNumber         int           `json:"weekNumber"`
	Year               int           `json:"year"`
	Status             SolverStatus  `json:"status"`
	ObjectiveValue     int           `json:"objectiveValue"`
	SolveTime          time.Duration `json:"solveTime"`
	HardConstraintsMet bool          `json:"hardConstraintsMet"`
	SoftScore          float64       `json:"softScore"`
	Assignments        []Assignment  `json:"assignments"`
}

// softScore rescales the raw objective onto a 0-100 band, 100 best. The
// constants are uncalibrated; scores only order results within one
// deployment and carry no absolute meaning.
func softScore(objective int) float64 {
	return math.Max(0, math.Min(100, 50-float64(objective)/200))
}
