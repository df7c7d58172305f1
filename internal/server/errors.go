package server

import (
	"errors"
	"net/http"
	"strings"

	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	"github.com/btcforcorps/orangepages/internal/auth/session"
	"github.com/btcforcorps/orangepages/internal/authorization"
	directorydomain "github.com/btcforcorps/orangepages/internal/directory/domain"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	pricingdomain "github.com/btcforcorps/orangepages/internal/pricing/domain"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal_error")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, userdomain.ErrBadCredentials),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, eventdomain.ErrPermissionDenied),
		errors.Is(err, entitlementdomain.ErrNotTeamMember):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, eventdomain.ErrAllocationExhausted):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "allocation_exhausted",
			Message: "allocation exhausted",
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isDirectoryValidationError(err),
		isMembershipValidationError(err),
		isTeamValidationError(err),
		isAllocationValidationError(err),
		isPricingValidationError(err),
		isEventValidationError(err),
		isUserValidationError(err),
		isAuthorizationValidationError(err):
		return true
	default:
		return false
	}
}

func isDirectoryValidationError(err error) bool {
	return errors.Is(err, directorydomain.ErrInvalidName) ||
		errors.Is(err, directorydomain.ErrInvalidEmail) ||
		errors.Is(err, directorydomain.ErrInvalidStatus) ||
		errors.Is(err, directorydomain.ErrInvalidBusiness) ||
		errors.Is(err, directorydomain.ErrInvalidUser)
}

func isMembershipValidationError(err error) bool {
	return errors.Is(err, membershipdomain.ErrInvalidBusiness) ||
		errors.Is(err, membershipdomain.ErrInvalidTier)
}

func isTeamValidationError(err error) bool {
	return errors.Is(err, teamdomain.ErrInvalidBusiness) ||
		errors.Is(err, teamdomain.ErrInvalidUser) ||
		errors.Is(err, teamdomain.ErrInvalidRole)
}

func isAllocationValidationError(err error) bool {
	return errors.Is(err, allocationdomain.ErrInvalidEvent) ||
		errors.Is(err, allocationdomain.ErrInvalidBusiness) ||
		errors.Is(err, allocationdomain.ErrInvalidTier) ||
		errors.Is(err, allocationdomain.ErrInvalidMode) ||
		errors.Is(err, allocationdomain.ErrReasonRequired)
}

func isPricingValidationError(err error) bool {
	return errors.Is(err, pricingdomain.ErrInvalidThresholdType) ||
		errors.Is(err, pricingdomain.ErrInvalidThresholdValue) ||
		errors.Is(err, pricingdomain.ErrInvalidDiscount) ||
		errors.Is(err, pricingdomain.ErrInvalidID) ||
		errors.Is(err, pricingdomain.ErrInvalidBenefit)
}

func isEventValidationError(err error) bool {
	return errors.Is(err, eventdomain.ErrInvalidName) ||
		errors.Is(err, eventdomain.ErrInvalidSchedule) ||
		errors.Is(err, eventdomain.ErrInvalidStatus) ||
		errors.Is(err, eventdomain.ErrInvalidPassType) ||
		errors.Is(err, eventdomain.ErrInvalidQuantity) ||
		errors.Is(err, eventdomain.ErrInvalidAttendee) ||
		errors.Is(err, eventdomain.ErrInvalidTopic)
}

func isUserValidationError(err error) bool {
	return errors.Is(err, userdomain.ErrInvalidEmail) ||
		errors.Is(err, userdomain.ErrInvalidName) ||
		errors.Is(err, userdomain.ErrInvalidPassword) ||
		errors.Is(err, entitlementdomain.ErrInvalidUser) ||
		errors.Is(err, entitlementdomain.ErrInvalidBusiness)
}

func isAuthorizationValidationError(err error) bool {
	return errors.Is(err, authorization.ErrInvalidActor) ||
		errors.Is(err, authorization.ErrInvalidObject) ||
		errors.Is(err, authorization.ErrInvalidAction)
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, directorydomain.ErrSlugTaken),
		errors.Is(err, directorydomain.ErrClaimExists),
		errors.Is(err, directorydomain.ErrClaimNotPending),
		errors.Is(err, membershipdomain.ErrAlreadyActive),
		errors.Is(err, teamdomain.ErrAlreadyOnTeam),
		errors.Is(err, teamdomain.ErrLastOwner),
		errors.Is(err, eventdomain.ErrSlugTaken),
		errors.Is(err, eventdomain.ErrEventNotOpen),
		errors.Is(err, userdomain.ErrEmailTaken):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, directorydomain.ErrBusinessNotFound),
		errors.Is(err, directorydomain.ErrClaimNotFound),
		errors.Is(err, membershipdomain.ErrNoActiveMembership),
		errors.Is(err, teamdomain.ErrNotOnTeam),
		errors.Is(err, allocationdomain.ErrNoActiveMembership),
		errors.Is(err, allocationdomain.ErrNoTierDefault),
		errors.Is(err, pricingdomain.ErrNotFound),
		errors.Is(err, eventdomain.ErrEventNotFound),
		errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
