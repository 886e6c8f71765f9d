// Package errors provides structured domain errors for the service layers.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Campaign errors
	CodeCampaignIDEmpty    Code = "CAMPAIGN_ID_EMPTY"
	CodeCampaignNameEmpty  Code = "CAMPAIGN_NAME_EMPTY"
	CodeSceneAlreadyActive Code = "SCENE_ALREADY_ACTIVE"
	CodeSceneNotActive     Code = "SCENE_NOT_ACTIVE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Dice/mechanics errors
	CodeDiceMissing       Code = "DICE_MISSING"
	CodeDiceInvalidSpec   Code = "DICE_INVALID_SPEC"
	CodeUnknownLikelihood Code = "FATE_UNKNOWN_LIKELIHOOD"
	CodeCheckInvalid      Code = "CHECK_INVALID"
	CodeTableIDEmpty      Code = "TABLE_ID_EMPTY"

	// Transport errors
	CodeInvalidRequest  Code = "INVALID_REQUEST"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeRateLimited     Code = "RATE_LIMITED"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Validation failures, bad input
	case CodeCampaignIDEmpty,
		CodeCampaignNameEmpty,
		CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeUnknownLikelihood,
		CodeCheckInvalid,
		CodeTableIDEmpty,
		CodeInvalidRequest:
		return http.StatusBadRequest

	// State doesn't allow operation
	case CodeSceneAlreadyActive,
		CodeSceneNotActive:
		return http.StatusConflict

	case CodeNotFound:
		return http.StatusNotFound

	case CodeUnauthenticated:
		return http.StatusUnauthorized

	case CodeRateLimited:
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}
