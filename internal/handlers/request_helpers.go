package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"storefront/internal/middleware"
)

// ValidationError is a presence or shape check the request body failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func handlePanic(c *gin.Context, route string, logger zerolog.Logger) {
	if r := recover(); r != nil {
		logger.Error().
			Str("route", route).
			Str("request_id", middleware.GetRequestID(c)).
			Interface("panic", r).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error. Please try again later."})
	}
}

// respondWithError logs err (if any) with the route and answers with message
// only; err never reaches the client.
func respondWithError(c *gin.Context, logger zerolog.Logger, status int, route, message string, err error) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Err(err).
		Str("route", route).
		Int("status", status).
		Str("request_id", middleware.GetRequestID(c)).
		Msg(message)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

func respondValidationError(c *gin.Context, logger zerolog.Logger, route, message string, problems []ValidationError) {
	details := make([]string, 0, len(problems))
	for _, p := range problems {
		details = append(details, p.Error())
	}
	logger.Warn().
		Str("route", route).
		Strs("problems", details).
		Str("request_id", middleware.GetRequestID(c)).
		Msg("validation failed")
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
		"errors":  details,
	})
}

// validationProblems turns a gin binding error into per-field problems.
func validationProblems(err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		problems := make([]ValidationError, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				problems = append(problems, ValidationError{Field: field, Reason: "is required"})
			case "min":
				problems = append(problems, ValidationError{Field: field, Reason: fmt.Sprintf("must contain at least %s item(s)", fieldError.Param())})
			default:
				problems = append(problems, ValidationError{Field: field, Reason: "is invalid"})
			}
		}
		return problems
	}

	var problem ValidationError
	if errors.As(err, &problem) {
		return []ValidationError{problem}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if typeErr.Field == "items" {
			return []ValidationError{errItemsNotObjects}
		}
		return []ValidationError{{Field: typeErr.Field, Reason: "has the wrong type"}}
	}

	return []ValidationError{{Field: "body", Reason: "must be a JSON object"}}
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
