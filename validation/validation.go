// Package validation checks request payloads before anything is persisted.
//
// Each payload type normalises itself (trimming, case folding) and carries
// go-playground/validator tags. Failures are reported as one BadRequest whose
// message lists every violated field in payload order.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/faizan/roster/apperr"
)

// Normalizer is implemented by payloads that clean their own values.
type Normalizer interface {
	Normalize()
}

// Validator wraps a configured validator.Validate. It is safe for
// concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &Validator{v: v}
}

// maxBytes bounds the encoded length of a string, unlike max which counts
// runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Messages normalises payload and returns the violation messages in field
// order. An empty result means the payload is valid.
func (val *Validator) Messages(payload interface{}) []string {
	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}
	err := val.v.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("invalid payload: %v", err)}
	}
	msgs := make([]string, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		msg := messageFor(fe.Field(), fe.Tag())
		if seen[msg] {
			continue
		}
		seen[msg] = true
		msgs = append(msgs, msg)
	}
	return msgs
}

// Check is Messages folded into a single BadRequest error.
func (val *Validator) Check(payload interface{}) error {
	msgs := val.Messages(payload)
	if len(msgs) == 0 {
		return nil
	}
	return apperr.BadRequest(strings.Join(msgs, ", "))
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func lower(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

func upper(s *string) {
	if s != nil {
		*s = strings.ToUpper(strings.TrimSpace(*s))
	}
}
