package model

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

type StudentID string

type StaffID string

// Certification is a care competency a staff member may hold and a student
// may require (e.g. "epilepsy", "diabetes").
type Certification string

type Role string

const (
	RoleAssistant       Role = "assistant"
	RoleTeacher         Role = "teacher"
	RoleLeisureEducator Role = "leisure_educator"
)

// Minutes is a time of day expressed as minutes since midnight.
type Minutes int

func ParseClock(value string) (Minutes, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	return Minutes(hour*60 + minute), nil
}

func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid clock time %s", data)
	}
	parsed, err := ParseClock(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// CareTimeRule is a recurring weekly interval during which a student requires
// supervision. The rule contributes only while the target week falls inside
// [ValidFrom, ValidTo).
type CareTimeRule struct {
	Weekday   int        `mapstructure:"weekday" validate:"min=0,max=4"`
	Start     Minutes    `mapstructure:"start"`
	End       Minutes    `mapstructure:"end" validate:"gtfield=Start"`
	ValidFrom time.Time  `mapstructure:"validFrom"`
	ValidTo   *time.Time `mapstructure:"validTo"`
}

// WorkHourRule is a recurring weekly on-duty interval. Rotation 0 applies
// every week; 1 and 2 alternate, keyed by week-number parity. The lunch
// window is carried as data and deliberately not enforced by the engine.
type WorkHourRule struct {
	Weekday    int      `mapstructure:"weekday" validate:"min=0,max=4"`
	Start      Minutes  `mapstructure:"start"`
	End        Minutes  `mapstructure:"end" validate:"gtfield=Start"`
	LunchStart *Minutes `mapstructure:"lunchStart"`
	LunchEnd   *Minutes `mapstructure:"lunchEnd"`
	Rotation   int      `mapstructure:"rotation" validate:"min=0,max=2"`
}

// AbsencePeriod marks a staff member absent on one date, either all day
// (no start/end) or during [Start, End). The reason is informational only.
type AbsencePeriod struct {
	StaffID StaffID   `mapstructure:"staffId" validate:"required"`
	Date    time.Time `mapstructure:"date" validate:"required"`
	Start   *Minutes  `mapstructure:"start"`
	End     *Minutes  `mapstructure:"end"`
	Reason  string    `mapstructure:"reason"`
}

type Student struct {
	ID                     StudentID       `mapstructure:"id" validate:"required"`
	FirstName              string          `mapstructure:"firstName"`
	LastName               string          `mapstructure:"lastName"`
	Grade                  int             `mapstructure:"grade" validate:"min=1,max=6"`
	HasCareNeeds           bool            `mapstructure:"hasCareNeeds"`
	CareRequirements       []Certification `mapstructure:"careRequirements"`
	PreferredStaff         []StaffID       `mapstructure:"preferredStaff"`
	RequiresDoubleStaffing bool            `mapstructure:"requiresDoubleStaffing"`
	CareTimes              []CareTimeRule  `mapstructure:"careTimes" validate:"dive"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type Staff struct {
	ID             StaffID         `mapstructure:"id" validate:"required"`
	FirstName      string          `mapstructure:"firstName"`
	LastName       string          `mapstructure:"lastName"`
	Role           Role            `mapstructure:"role" validate:"omitempty,oneof=assistant teacher leisure_educator"`
	Certifications []Certification `mapstructure:"certifications"`
	WorkHours      []WorkHourRule  `mapstructure:"workHours" validate:"dive"`
}

func (s Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Covers reports whether the staff member holds every required certification.
func (s Staff) Covers(requirements []Certification) bool {
	return lo.Every(s.Certifications, requirements)
}
