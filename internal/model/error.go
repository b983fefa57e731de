package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidOrExpired = "COUPON_INVALID_OR_EXPIRED"
	ErrCodeDuplicate        = "DUPLICATE"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is an error carrying a stable code for HTTP status mapping.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NotFoundError creates a NotFound domain error with the given message.
func NotFoundError(message string) *DomainError {
	return NewDomainError(ErrCodeNotFound, message)
}

// ValidationError creates a ValidationFailed domain error with the given message.
func ValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed, message)
}

// Common domain errors
var (
	ErrCartNotFound           = NotFoundError("There is no cart for this user")
	ErrCartItemNotFound       = NotFoundError("There is no cart item for this id")
	ErrProductNotFound        = NotFoundError("There is no product for this id")
	ErrOrderNotFound          = NotFoundError("There is no order for this id")
	ErrCouponNotFound         = NotFoundError("There is no coupon for this id")
	ErrCategoryNotFound       = NotFoundError("There is no category for this id")
	ErrBrandNotFound          = NotFoundError("There is no brand for this id")
	ErrReviewNotFound         = NotFoundError("There is no review for this id")
	ErrUserNotFound           = NotFoundError("There is no user for this id")
	ErrCouponInvalidOrExpired = NewDomainError(ErrCodeInvalidOrExpired, "Coupon is invalid or expired")
	ErrEmailTaken             = NewDomainError(ErrCodeDuplicate, "Email is already registered")
	ErrReviewExists           = NewDomainError(ErrCodeDuplicate, "You already reviewed this product")
	ErrInvalidCredentials     = NewDomainError(ErrCodeUnauthorised, "Incorrect email or password")
)
