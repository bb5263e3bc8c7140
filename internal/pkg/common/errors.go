package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the API error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// CustomError carries an error code, a user-facing message and the HTTP
// status the API layer should map it to.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError creates a new CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithErr returns a copy of e wrapping the given cause.
func (e *CustomError) WithErr(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// ErrorCode extracts the code from err, or INTERNAL_ERROR for plain errors.
func ErrorCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternalError
}

// ErrorStatus extracts the HTTP status from err, defaulting to 500.
func ErrorStatus(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// ValidationError marks a value that failed shape validation, e.g. one
// ingredient in an LLM response. Validation errors lower the confidence
// score instead of aborting the parse.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Error codes.
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429
	ErrCodeInternalError   = "INTERNAL_ERROR"    // 500

	// Pipeline taxonomy.
	ErrCodeInvalidURL      = "INVALID_URL"       // 400
	ErrCodeFetchError      = "FETCH_ERROR"       // 502
	ErrCodeNotARecipe      = "NOT_A_RECIPE"      // 422
	ErrCodeLLMAPIError     = "LLM_API_ERROR"     // 502
	ErrCodeLLMParsingError = "LLM_PARSING_ERROR" // 502
	ErrCodeLowConfidence   = "LOW_CONFIDENCE"    // 422
	ErrCodeLowVerification = "LOW_VERIFICATION"  // 422
)

// Predeclared errors.
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)

	ErrInvalidURL      = NewError(ErrCodeInvalidURL, "invalid recipe URL", http.StatusBadRequest, nil)
	ErrFetchError      = NewError(ErrCodeFetchError, "failed to fetch page", http.StatusBadGateway, nil)
	ErrNotARecipe      = NewError(ErrCodeNotARecipe, "page does not look like a recipe", http.StatusUnprocessableEntity, nil)
	ErrLLMAPIError     = NewError(ErrCodeLLMAPIError, "LLM relay returned an error", http.StatusBadGateway, nil)
	ErrLLMParsingError = NewError(ErrCodeLLMParsingError, "malformed LLM relay response", http.StatusBadGateway, nil)
	ErrLowConfidence   = NewError(ErrCodeLowConfidence, "parsed ingredient list failed the confidence gate", http.StatusUnprocessableEntity, nil)
	ErrLowVerification = NewError(ErrCodeLowVerification, "parsed ingredients could not be verified against page text", http.StatusUnprocessableEntity, nil)
)
