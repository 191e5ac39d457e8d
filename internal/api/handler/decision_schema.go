package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// createDecisionRequest is the body of POST /decisiones/nueva.
type createDecisionRequest struct {
	Text      *string `json:"texto" validate:"required,notblank"`
	Result    *string `json:"resultado,omitempty"`
	Succeeded *bool   `json:"exito,omitempty"`
}

// updateTextRequest is the body of PUT /decisiones/editar/texto/:id.
type updateTextRequest struct {
	Text *string `json:"texto" validate:"required,notblank"`
}

// updateResultRequest is the body of PUT /decisiones/editar/resultado/:id.
type updateResultRequest struct {
	Result *string `json:"resultado" validate:"required,min=1"`
}

// updateSucceededRequest is the body of PUT /decisiones/editar/exito/:id.
type updateSucceededRequest struct {
	Succeeded *bool `json:"exito" validate:"required"`
}

// tagTypeMismatch is reported for fields whose JSON value had the wrong type.
const tagTypeMismatch = "type"

// fieldRules maps a rejected field and the rule it broke to the input error
// returned to the caller. A nil result falls back to domain.ErrBadRequest.
type fieldRules func(field, tag string) error

func createRules(field, tag string) error {
	switch field {
	case "texto":
		if tag == "notblank" {
			return domain.ErrInvalidText
		}
		return domain.ErrTextNotString
	case "resultado":
		return domain.ErrInvalidResult
	case "exito":
		return domain.ErrInvalidSucceeded
	}
	return nil
}

func singleFieldRule(name string, err error) fieldRules {
	return func(field, _ string) error {
		if field == name {
			return err
		}
		return nil
	}
}

// bindInput decodes and validates req, translating failures through rules.
func bindInput(c echo.Context, req any, rules fieldRules) error {
	if err := c.Bind(req); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) {
			if ferr := rules(ute.Field, tagTypeMismatch); ferr != nil {
				return ferr
			}
		}
		return fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	if err := c.Validate(req); err != nil {
		for field, tag := range failedFields(err) {
			if ferr := rules(field, tag); ferr != nil {
				return ferr
			}
		}
		return fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	return nil
}

func isTypeMismatch(err error) bool {
	var ute *json.UnmarshalTypeError
	return errors.As(err, &ute)
}
