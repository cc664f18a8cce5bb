// Package validation holds pure input-validation logic shared by the
// repository layer: the need/got quantity-pair invariant applied to both
// supply items and human-resource headcounts, plus lenient format checks
// for phone numbers and URLs.
package validation

import "fmt"

// ValueSource tells where an effective value came from when a pair check
// fails, so that error messages can point at the right side.
type ValueSource string

const (
	SourceInput  ValueSource = "input"
	SourceStored ValueSource = "stored"
	SourceNone   ValueSource = "none"
)

// FieldError attributes a validation failure to a single field.
type FieldError struct {
	Field   string      `json:"field"`
	Source  ValueSource `json:"source"`
	Message string      `json:"message"`
	Value   any         `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckQuantityPair validates a need/got pair for a partial update where
// either side may be omitted and falls back to the stored value.
//
// Rules:
//   - an explicitly provided negative value is rejected;
//   - effective need = needInput if present else needStored, same for got;
//   - when both effective values exist, got must not exceed need.
//
// The returned errors name both fields, both effective values, and each
// value's source so the caller can correct the right side.
func CheckQuantityPair(needField, gotField string, needInput, gotInput, needStored, gotStored *int) []FieldError {
	var errs []FieldError

	if needInput != nil && *needInput < 0 {
		errs = append(errs, FieldError{
			Field:   needField,
			Source:  SourceInput,
			Message: fmt.Sprintf("%s must be >= 0", needField),
			Value:   *needInput,
		})
	}
	if gotInput != nil && *gotInput < 0 {
		errs = append(errs, FieldError{
			Field:   gotField,
			Source:  SourceInput,
			Message: fmt.Sprintf("%s must be >= 0", gotField),
			Value:   *gotInput,
		})
	}

	needEff, needSrc := effective(needInput, needStored)
	gotEff, gotSrc := effective(gotInput, gotStored)

	if needEff != nil && gotEff != nil && *gotEff > *needEff {
		// Point the error at whichever side the caller changed.
		src := SourceStored
		if gotInput != nil || needInput != nil {
			src = SourceInput
		}
		errs = append(errs, FieldError{
			Field:  gotField,
			Source: src,
			Message: fmt.Sprintf("%s must be less than or equal to %s (got=%d from %s, need=%d from %s)",
				gotField, needField, *gotEff, gotSrc, *needEff, needSrc),
			Value: *gotEff,
		})
	}

	return errs
}

// PairLocked reports whether a stored need/got pair is frozen: once the two
// stored values are equal, partial updates to either field are rejected.
// Callers apply this check before CheckQuantityPair; it deliberately does
// not apply to the distribution path, which rejects via overflow instead.
func PairLocked(needStored, gotStored int) bool {
	return needStored == gotStored
}

func effective(input, stored *int) (*int, ValueSource) {
	if input != nil {
		return input, SourceInput
	}
	if stored != nil {
		return stored, SourceStored
	}
	return nil, SourceNone
}
