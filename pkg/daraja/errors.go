package daraja

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("daraja: consumer key and secret are required")
	ErrInvalidEnvironment = errors.New("daraja: environment must be sandbox or production")
)

// APIError carries the details shared by every failed Daraja call.
//
// Message prefers the provider's errorMessage and falls back to the transport
// error text.
type APIError struct {
	Op         string
	StatusCode int
	RequestID  string
	ErrorCode  string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// AuthenticationError is returned when an access token could not be obtained.
type AuthenticationError struct{ APIError }

// PaymentInitiationError is returned when an STK push was not accepted.
type PaymentInitiationError struct{ APIError }

// PaymentQueryError is returned when an STK push status query failed.
type PaymentQueryError struct{ APIError }

// AsAPIError extracts the shared details from any of the typed Daraja errors.
func AsAPIError(err error) (*APIError, bool) {
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return &authErr.APIError, true
	}
	var initErr *PaymentInitiationError
	if errors.As(err, &initErr) {
		return &initErr.APIError, true
	}
	var queryErr *PaymentQueryError
	if errors.As(err, &queryErr) {
		return &queryErr.APIError, true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// providerError is the error body Daraja returns on 4xx/5xx.
type providerError struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

const (
	opAccessToken  = "failed to get access token"
	opStkPush      = "STK push failed"
	opStkPushQuery = "STK push query failed"
)
