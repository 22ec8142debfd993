package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var stockPolicies = []string{"before_session", "after_session", "deferred"}

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("stock_policy", validateStockPolicy)
	validator.RegisterValidation("gateway_id", validateGatewayID)

	return validator
}

func validateStockPolicy(fl validator.FieldLevel) bool {
	policy := fl.Field().String()

	for _, p := range stockPolicies {
		if policy == p {
			return true
		}
	}

	return false
}

// Gateway ids end up in settings keys, so they are limited to lower case
// letters, digits and underscores.
func validateGatewayID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return false
	}

	for _, ch := range id {
		if !(ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9' || ch == '_') {
			return false
		}
	}

	return true
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(err.Param()), ", "))
	case "stock_policy":
		return fmt.Sprintf("must be one of: %s", strings.Join(stockPolicies, ", "))
	case "gateway_id":
		return "must contain only lower case letters, digits and underscores"
	default:
		return "is invalid"
	}
}
