package daraja

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Environment selects the Daraja host a Client talks to.
type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

const (
	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	productionBaseURL = "https://api.safaricom.co.ke"
)

// ParseEnvironment accepts "sandbox" or "production" (case-insensitive).
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Sandbox:
		return Sandbox, nil
	case Production:
		return Production, nil
	}
	return "", ErrInvalidEnvironment
}

func (e Environment) valid() bool {
	return e == Sandbox || e == Production
}

// BaseURL returns the provider host for the environment.
func (e Environment) BaseURL() string {
	if e == Production {
		return productionBaseURL
	}
	return sandboxBaseURL
}

func (e Environment) String() string { return string(e) }

// Config holds the app credentials issued on the Daraja portal.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	// Timeout bounds each HTTP round trip. Zero means DefaultTimeout.
	Timeout time.Duration
}

const TransactionTypePayBillOnline = "CustomerPayBillOnline"

type StkPushRequest struct {
	BusinessShortCode string
	PassKey           string
	// Amount is in whole shillings.
	Amount           int64
	PhoneNumber      string
	CallBackURL      string
	AccountReference string
	TransactionDesc  string
}

type StkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type StkPushQueryRequest struct {
	BusinessShortCode string
	PassKey           string
	CheckoutRequestID string
}

type StkPushQueryResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

// Result codes reported by the query endpoint and the STK callback. Any other
// code is a failure.
const (
	ResultCodeSuccess         = 0
	ResultCodeCancelledByUser = 1032
)

// ErrorCodeTransactionInProgress is returned by the query endpoint while the
// payer has not yet answered the prompt.
const ErrorCodeTransactionInProgress = "500.001.1001"

type stkPushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushQueryPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type accessTokenResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   seconds `json:"expires_in"`
}

// seconds decodes a lifetime sent either as "3599" or 3599. Anything else
// decodes to zero, which leaves the client's cap in charge.
type seconds int64

func (s *seconds) UnmarshalJSON(b []byte) error {
	*s = 0
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*s = seconds(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal([]byte(raw), &f); err == nil {
		*s = seconds(f)
	}
	return nil
}
