package model

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// WeekSnapshot is the engine's full input for one target week: the
// collaborators as they stood when the schedule was requested, plus the
// registered absences.
type WeekSnapshot struct {
	WeekNumber int             `mapstructure:"weekNumber" validate:"min=1,max=53"`
	Year       int             `mapstructure:"year" validate:"min=2000"`
	Students   []Student       `mapstructure:"students" validate:"dive"`
	Staff      []Staff         `mapstructure:"staff" validate:"dive"`
	Absences   []AbsencePeriod `mapstructure:"absences" validate:"dive"`
}

// SnapshotFromJSON loads and validates a week snapshot. Clock times are
// written as "HH:MM" strings and dates as "2006-01-02".
func SnapshotFromJSON(file string) (WeekSnapshot, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return WeekSnapshot{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return WeekSnapshot{}, fmt.Errorf("parsing %s: %w", file, err)
	}

	var snapshot WeekSnapshot
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &snapshot,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(decodeClock, decodeDate),
	})
	if err != nil {
		return WeekSnapshot{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return WeekSnapshot{}, fmt.Errorf("decoding %s: %w", file, err)
	}

	if err := validate.Struct(snapshot); err != nil {
		return WeekSnapshot{}, fmt.Errorf("validating %s: %w", file, err)
	}
	return snapshot, nil
}

func decodeClock(from, to reflect.Type, value any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(Minutes(0)) {
		return value, nil
	}
	return ParseClock(value.(string))
}

func decodeDate(from, to reflect.Type, value any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return value, nil
	}
	return time.Parse("2006-01-02", value.(string))
}
