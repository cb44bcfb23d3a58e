package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	ldomain "github.com/corvusHold/leasedesk/internal/lease/domain"
)

// ErrorBody is a standard validation error payload.
type ErrorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

// ErrorResponse converts a validator or lease input error into a structured response.
func ErrorResponse(err error) ErrorBody {
	fields := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			fields[field] = append(fields[field], fe.Tag())
		}
	}
	var ve ldomain.ValidationError
	if errors.As(err, &ve) {
		fields[ve.Field] = append(fields[ve.Field], ve.Message)
		return ErrorBody{Error: "validation_failed", Fields: fields}
	}
	var pe ldomain.UnsupportedPolicyError
	if errors.As(err, &pe) {
		fields[pe.Field] = append(fields[pe.Field], "unsupported: "+pe.Value)
		return ErrorBody{Error: "unsupported_policy", Fields: fields}
	}
	if len(fields) == 0 {
		return ErrorBody{Error: err.Error(), Fields: fields}
	}
	return ErrorBody{Error: "validation_failed", Fields: fields}
}
