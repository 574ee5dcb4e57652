/*
PURPOSE:
  Validates the min/max/step fields of a run.
  One pure function feeds both the live field feedback of the interactive
  form and the submit gate of every command.

REQUIREMENTS:
  User-specified:
  - Reject non-numeric, non-positive, max <= min and step > max - min.
  - Each rejection must be distinguishable.

  Implementation-discovered:
  - Live feedback needs a per-field verdict even when another field is broken.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli (run, analyze), internal/config (Validate)

ERROR HANDLING:
  - ValidationError carries Field and a sentinel class; use errors.Is.

USAGE:
  v := params.Check(params.Raw{Min: "100", Max: "1000", Step: "100"})
  if err := v.Err(); err != nil { ... }
*/

package params

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotANumber     = errors.New("not a number")
	ErrNonPositive    = errors.New("non-positive value")
	ErrMaxNotAboveMin = errors.New("max must be greater than min")
	ErrStepTooLarge   = errors.New("step too large")
)

// Field names a validated input field.
type Field string

const (
	FieldMin  Field = "min"
	FieldMax  Field = "max"
	FieldStep Field = "step"
)

// ValidationError is a rejected run parameter.
type ValidationError struct {
	Field   Field
	Class   error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Class
}

// Raw holds the unparsed field text.
type Raw struct {
	Min  string
	Max  string
	Step string
}

// FromInts builds a Raw from already-numeric values.
func FromInts(min, max, step int) Raw {
	return Raw{Min: strconv.Itoa(min), Max: strconv.Itoa(max), Step: strconv.Itoa(step)}
}

// FieldVerdict is the live-feedback state of one field.
type FieldVerdict struct {
	Value   int
	Parsed  bool
	Invalid bool
	Reason  error
}

// Verdict is the outcome of Check.
type Verdict struct {
	Min  FieldVerdict
	Max  FieldVerdict
	Step FieldVerdict
}

// Check validates raw. It never fails; inspect the per-field verdicts or Err.
func Check(raw Raw) Verdict {
	v := Verdict{
		Min:  parseField(raw.Min),
		Max:  parseField(raw.Max),
		Step: parseField(raw.Step),
	}

	for _, f := range []*FieldVerdict{&v.Min, &v.Max, &v.Step} {
		if f.Parsed && f.Value <= 0 {
			f.Invalid, f.Reason = true, ErrNonPositive
		}
	}
	if !v.Min.Parsed || !v.Max.Parsed {
		return v
	}
	if !v.Max.Invalid && v.Max.Value <= v.Min.Value {
		v.Max.Invalid, v.Max.Reason = true, ErrMaxNotAboveMin
	}
	if v.Step.Parsed && !v.Step.Invalid && v.Step.Value > v.Max.Value-v.Min.Value {
		v.Step.Invalid, v.Step.Reason = true, ErrStepTooLarge
	}
	return v
}

func parseField(s string) FieldVerdict {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return FieldVerdict{Invalid: true, Reason: ErrNotANumber}
	}
	return FieldVerdict{Value: n, Parsed: true}
}

// Valid reports whether all three fields pass.
func (v Verdict) Valid() bool {
	return v.Err() == nil
}

// Err is the submit gate. It reports the first failure in the order
// not a number, non-positive value, max <= min, step too large.
func (v Verdict) Err() error {
	fields := []struct {
		name Field
		fv   FieldVerdict
	}{{FieldMin, v.Min}, {FieldMax, v.Max}, {FieldStep, v.Step}}

	for _, f := range fields {
		if errors.Is(f.fv.Reason, ErrNotANumber) {
			return &ValidationError{
				Field:   f.name,
				Class:   ErrNotANumber,
				Message: "please enter valid numbers for all size fields",
			}
		}
	}
	for _, f := range fields {
		if errors.Is(f.fv.Reason, ErrNonPositive) {
			return &ValidationError{
				Field:   f.name,
				Class:   ErrNonPositive,
				Message: "all size values must be positive numbers",
			}
		}
	}
	if errors.Is(v.Max.Reason, ErrMaxNotAboveMin) {
		return &ValidationError{
			Field:   FieldMax,
			Class:   ErrMaxNotAboveMin,
			Message: fmt.Sprintf("maximum size must be greater than minimum size (min=%d, max=%d)", v.Min.Value, v.Max.Value),
		}
	}
	if errors.Is(v.Step.Reason, ErrStepTooLarge) {
		return &ValidationError{
			Field:   FieldStep,
			Class:   ErrStepTooLarge,
			Message: fmt.Sprintf("step size is too large for the given range (maximum allowed step: %d)", v.Max.Value-v.Min.Value),
		}
	}
	return nil
}

// FieldErr returns the live-feedback error for a single field, or nil.
func (v Verdict) FieldErr(f Field) error {
	var fv FieldVerdict
	switch f {
	case FieldMin:
		fv = v.Min
	case FieldMax:
		fv = v.Max
	case FieldStep:
		fv = v.Step
	}
	if !fv.Invalid {
		return nil
	}
	return fmt.Errorf("%s: %w", f, fv.Reason)
}
