// Package schema validates extracted model output against the domain record
// shapes. Validation is two-phase: flexible scalar types first coerce
// type-loose JSON (numbers as strings, strings as numbers, booleans), then
// the per-kind validators check that required structure is present.
//
// Coercion table:
//
//	Str  <- JSON string | number | boolean | null ("") | object/array (compact text)
//	Num  <- JSON number | numeric string
//	Int  <- JSON integer | integral float | numeric string
//
// Enum-like fields (case-study type, affiliate type, visual type, quote
// position) deliberately accept unknown string values: models occasionally
// invent a plausible-but-unlisted category, and rejecting those would fail
// otherwise sound records. Rejection happens only on missing structure.
package schema

import (
	"bookforge/internal/errors"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRecord signals that a record failed schema validation.
var ErrInvalidRecord = errors.NewSentinel("record failed schema validation")

// ValidationError reports which record kind failed and every violation found.
type ValidationError struct {
	Kind       string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

func invalid(kind string, violations []string) error {
	return &ValidationError{Kind: kind, Violations: violations}
}

// Str is a string that absorbs type-loose JSON scalars.
type Str string

func (s *Str) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Str(v)
		return nil
	}
	// Numbers, booleans, and nested values keep their literal text.
	*s = Str(trimmed)
	return nil
}

// Num is a float64 that also accepts numeric strings.
type Num float64

func (n *Num) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		trimmed = strings.TrimSpace(v)
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("cannot coerce %q to number", trimmed)
	}
	*n = Num(parsed)
	return nil
}

// Int is an int that accepts integral floats and numeric strings.
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	var n Num
	if err := n.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = Int(math.Round(float64(n)))
	return nil
}
