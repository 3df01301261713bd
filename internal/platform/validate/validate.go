// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects request field failures into one [apperr.AppError].
//
// Services build a [Validator] per call, chain the rules and return [Validator.Err]:
//
//	v := &validate.Validator{}
//	if err := v.Index("point_index", index, len(points)).Err(); err != nil {
//		return Selection{}, err
//	}
package validate

import (
	"fmt"
	"regexp"

	"github.com/taibuivan/cinetrend/internal/platform/apperr"
)

var (
	// slugPattern matches the identifiers produced by pkg/slug.
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator accumulates failures. It is not safe for concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// Present fails when a required field was absent from the request.
func (v *Validator) Present(field string, present bool) *Validator {
	return v.Custom(field, !present, "This field is required")
}

// Index fails unless 0 <= value < length.
func (v *Validator) Index(field string, value, length int) *Validator {
	switch {
	case length == 0:
		v.add(field, "No points are currently rendered")
	case value < 0 || value >= length:
		v.add(field, fmt.Sprintf("Must be between 0 and %d", length-1))
	}
	return v
}

// Slug fails unless value is lowercase ASCII words joined by single hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	return v.Custom(field, !slugPattern.MatchString(value),
		"Must be a valid slug (lowercase letters, digits, hyphens only)")
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns the accumulated failures as a VALIDATION_ERROR, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
