package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and connectivity errors into a code/message
// pair safe to return to clients. Sensitive details stay in the logs.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		if strings.Contains(errStr, "email") || strings.Contains(errStr, "idx_users_email") {
			return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email address is already registered"}
		}
		if strings.Contains(errStr, "sku") || strings.Contains(errStr, "idx_variants_sku") {
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "A variant with this SKU already exists"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
	}

	// Postgres foreign key violation (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "Record is referenced by other data and cannot be deleted"}
		}
		if strings.Contains(errStr, "product_id") {
			return ErrorInfo{Code: CatalogProductNotFound, Message: "Referenced product does not exist"}
		}
		if strings.Contains(errStr, "variant_id") {
			return ErrorInfo{Code: CatalogVariantNotFound, Message: "Referenced variant does not exist"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record does not exist"}
	}

	// Postgres not-null violation (23502)
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	// Connectivity failures (database, redis, external services)
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "variant") {
		return "Variant not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart not found"
	}

	return "Requested record not found"
}
