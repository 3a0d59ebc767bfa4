// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-blog-api/models"
	"github.com/go-playground/validator/v10"
)

const (
	tagPasswordPolicy = "password_policy"
	tagBcryptLen      = "bcrypt_len"
	tagNoNUL          = "no_nul"

	// bcryptMaxBytes is the longest password bcrypt accepts.
	bcryptMaxBytes = 72
)

var allowedSortBy = []string{
	models.SortByCreatedAt,
	models.SortByUpdatedAt,
	models.SortByTitle,
}

// RequestValidator validates the request models of the API.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation(tagPasswordPolicy, passwordPolicy)
	_ = v.RegisterValidation(tagBcryptLen, bcryptLen)
	_ = v.RegisterValidation(tagNoNUL, noNUL)

	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest, *models.LoginRequest,
		models.UpdateProfileRequest, *models.UpdateProfileRequest,
		models.ChangePasswordRequest, *models.ChangePasswordRequest,
		models.BlogRequest, *models.BlogRequest,
		models.TagsRequest, *models.TagsRequest:
		return v.validateStruct(ctx, value, fields...)

	case models.ListParams:
		return validateListParams(value)
	case *models.ListParams:
		return validateListParams(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRegisterRequest(ctx context.Context, req models.RegisterRequest, fields ...string) error {
	if err := v.validateStruct(ctx, req, fields...); err != nil {
		return err
	}

	if len(fields) == 0 || contains(fields, "Role") {
		if _, err := models.ParseRole(req.Role); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRole, err)
		}
	}

	return nil
}

func (v *RequestValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	return translate(fieldErrs[0])
}

func validateListParams(p models.ListParams) error {
	if p.Limit < 0 {
		return ErrInvalidLimit
	}
	if p.Offset < 0 {
		return ErrInvalidOffset
	}
	if !contains(allowedSortBy, p.SortBy) {
		return fmt.Errorf("%w: must be one of %s", ErrInvalidSortBy, strings.Join(allowedSortBy, ", "))
	}
	return nil
}

// translate turns a validator.FieldError into a sentinel-wrapped error with a
// message fit for the API response.
func translate(fe validator.FieldError) error {
	sentinel, ok := fieldErrors[fe.StructField()]
	if !ok {
		sentinel = ErrUnknownField
	}
	if fe.Tag() == "nefield" {
		sentinel = ErrPasswordUnchanged
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", sentinel, field)
	case "email":
		return fmt.Errorf("%w: %s must be a valid email address", sentinel, field)
	case "min":
		return fmt.Errorf("%w: %s must be at least %s characters long", sentinel, field, fe.Param())
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters long", sentinel, field, fe.Param())
	case tagPasswordPolicy:
		return fmt.Errorf("%w: %s must contain at least one uppercase letter, one lowercase letter and one digit", sentinel, field)
	case tagBcryptLen:
		return fmt.Errorf("%w: %s must be at most %d bytes long", sentinel, field, bcryptMaxBytes)
	case tagNoNUL:
		return fmt.Errorf("%w: %s must not contain NUL characters", sentinel, field)
	case "nefield":
		return sentinel
	default:
		return fmt.Errorf("%w: %s failed %q", sentinel, field, fe.Tag())
	}
}

// passwordPolicy requires at least one upper case letter, one lower case
// letter and one digit.
func passwordPolicy(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// bcryptLen bounds the UTF-8 length, since max counts runes.
func bcryptLen(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= bcryptMaxBytes
}

// noNUL rejects strings Postgres text columns cannot store.
func noNUL(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	default:
		return name
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
