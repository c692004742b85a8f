package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks a request that cannot produce a migration file.
var ErrValidation = errors.New("invalid migration request")

// Request describes the migration file to generate.
// Column is only meaningful for column operations; Schema is optional.
type Request struct {
	Operation Operation
	Name      string `validate:"required,excludesall=/\\"`
	Column    string `validate:"omitempty,excludesall=/\\"`
	Schema    string `validate:"omitempty,excludesall=/\\"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(Request)
		if req.Operation < 0 || int(req.Operation) >= len(operationNames) {
			sl.ReportError(req.Operation, "Operation", "Operation", "operation", "")
		}
		if req.Operation.NeedsColumn() && req.Column == "" {
			sl.ReportError(req.Column, "Column", "Column", "required_for_operation", req.Operation.String())
		}
	}, Request{})
	return v
}

// Validate trims the request fields and checks them.
func (r *Request) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Column = strings.TrimSpace(r.Column)
	r.Schema = strings.TrimSpace(r.Schema)

	err := validate.Struct(*r)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		msgs = append(msgs, fieldMessage(fe, r.Operation))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError, op Operation) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_for_operation":
		return fmt.Sprintf("%s is required for %s", field, op)
	case "excludesall":
		return field + " must not contain path separators"
	case "operation":
		return "unknown operation " + op.String()
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
