// Package schema implements the named request schemas and their validation.
// Each schema is a pure function of its raw input: it either yields a
// normalized value (defaults applied, unknown fields already stripped by
// JSON decoding) or an ordered list of field-level violations. A single
// pass collects every violation; it never stops at the first failure.
package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"user-profile-service/pkg/apperrors"
)

// Pagination defaults and bounds.
const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
)

// CreateUser is the schema for POST /api/users bodies.
type CreateUser struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age" validate:"omitnil,gte=0,lte=150"`
}

// UpdateUser is the schema for PUT /api/users/:id bodies. All fields are
// optional; constraints apply only when a field is present. An empty body
// passes here, the minimum-one-field rule belongs to the update operation.
type UpdateUser struct {
	Name  *string `json:"name" validate:"omitnil,min=2,max=100"`
	Email *string `json:"email" validate:"omitnil,email"`
	Age   *int    `json:"age" validate:"omitnil,gte=0,lte=150"`
}

// Empty reports whether the update supplies no mutable fields.
func (u *UpdateUser) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Age == nil
}

// IDParam is the schema for the :id path parameter.
type IDParam struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// Pagination is the normalized page/limit pair for list requests.
type Pagination struct {
	Page  int64 `json:"page" validate:"gte=1"`
	Limit int64 `json:"limit" validate:"gte=1,lte=100"`
}

// Validator evaluates schemas and reports violations keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. Field names in violations come from the json tag
// so clients see `email`, not `Email`.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// CreateUser normalizes and validates a create-user input in place.
func (v *Validator) CreateUser(in *CreateUser) []apperrors.Violation {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return v.check(in)
}

// UpdateUser normalizes and validates an update-user input in place.
func (v *Validator) UpdateUser(in *UpdateUser) []apperrors.Violation {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &lowered
	}
	return v.check(in)
}

// IDParam validates a raw path parameter as a v4 UUID.
func (v *Validator) IDParam(raw string) []apperrors.Violation {
	return v.check(&IDParam{ID: raw})
}

// Pagination parses raw query values, applying defaults for absent fields.
// Explicitly supplied values that are not integers or fall outside the
// declared bounds are violations, not silently clamped.
func (v *Validator) Pagination(pageRaw, limitRaw string) (Pagination, []apperrors.Violation) {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}
	var violations []apperrors.Violation

	if pageRaw != "" {
		page, err := strconv.ParseInt(pageRaw, 10, 64)
		if err != nil {
			violations = append(violations, apperrors.Violation{Field: "page", Message: "must be an integer"})
		} else {
			p.Page = page
		}
	}

	if limitRaw != "" {
		limit, err := strconv.ParseInt(limitRaw, 10, 64)
		if err != nil {
			violations = append(violations, apperrors.Violation{Field: "limit", Message: "must be an integer"})
		} else {
			p.Limit = limit
		}
	}

	violations = append(violations, v.check(&p)...)
	return p, violations
}

// check runs the validator and converts its aggregated errors into
// violations. go-playground/validator already evaluates every field rule
// before returning, which gives the full-pass semantics for free.
func (v *Validator) check(s any) []apperrors.Violation {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperrors.Violation{{Field: "", Message: err.Error()}}
	}

	violations := make([]apperrors.Violation, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, apperrors.Violation{
			Field:   e.Field(),
			Message: violationMessage(e),
		})
	}
	return violations
}

// violationMessage renders a human-readable message for a single failed rule.
func violationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid4":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return "is invalid"
	}
}
