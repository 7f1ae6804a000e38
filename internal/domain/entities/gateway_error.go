package entities

import "fmt"

type GatewayErrorKind string

const (
	GatewayErrorAuthentication GatewayErrorKind = "authentication"
	GatewayErrorInitiation     GatewayErrorKind = "initiation"
	GatewayErrorQuery          GatewayErrorKind = "query"
)

// GatewayError is the provider-neutral failure returned by payment gateways.
// StatusCode is zero when the request never got an HTTP answer.
type GatewayError struct {
	Kind         GatewayErrorKind
	StatusCode   int
	ProviderCode string
	Message      string
	Err          error

	// Pending is set by the gateway when the provider reports that the payer
	// has not answered the prompt yet.
	Pending bool
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func (e *GatewayError) InProgress() bool {
	return e.Pending
}

// Rejected reports whether the provider answered with a client error.
func (e *GatewayError) Rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}
