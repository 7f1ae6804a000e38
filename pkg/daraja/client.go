package daraja

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout = 30 * time.Second
	// DefaultTokenTTL caps how long a token is reused. Daraja reports 3599s;
	// the cap keeps a request from being sent with a token about to expire.
	DefaultTokenTTL = 3500 * time.Second

	pathAccessToken  = "/oauth/v1/generate?grant_type=client_credentials"
	pathStkPush      = "/mpesa/stkpush/v1/processrequest"
	pathStkPushQuery = "/mpesa/stkpushquery/v1/query"

	maxResponseBytes = 1 << 20
)

// Client talks to one Daraja environment with one set of app credentials.
// It is safe for concurrent use.
type Client struct {
	consumerKey    string
	consumerSecret string
	environment    Environment
	baseURL        string
	httpClient     *http.Client
	now            func() time.Time
	tokenTTL       time.Duration
	logger         *log.Logger

	mu    sync.RWMutex
	token cachedToken
	fetch singleflight.Group
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

func (t cachedToken) usable(now time.Time) bool {
	return t.value != "" && now.Before(t.expiresAt)
}

type Option func(*Client)

// WithHTTPClient replaces the default client. A non-zero hc.Timeout wins over
// Config.Timeout; otherwise Config.Timeout is applied to a copy of hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			c.baseURL = u
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithTokenTTL sets the upper bound applied to the provider-reported lifetime.
func WithTokenTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.tokenTTL = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(cfg Config, env Environment, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.ConsumerKey) == "" || strings.TrimSpace(cfg.ConsumerSecret) == "" {
		return nil, ErrMissingCredentials
	}
	if !env.valid() {
		return nil, ErrInvalidEnvironment
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		environment:    env,
		baseURL:        env.BaseURL(),
		httpClient:     &http.Client{Timeout: timeout},
		now:            time.Now,
		tokenTTL:       DefaultTokenTTL,
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Timeout == 0 {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
	return c, nil
}

// Environment reports the environment chosen at construction time.
func (c *Client) Environment() Environment {
	return c.environment
}

// StkPush prompts the payer's phone to authorize a PayBill payment.
func (c *Client) StkPush(ctx context.Context, r StkPushRequest) (StkPushResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return StkPushResponse{}, err
	}

	timestamp := Timestamp(c.now())
	payload := stkPushPayload{
		BusinessShortCode: r.BusinessShortCode,
		Password:          Password(r.BusinessShortCode, r.PassKey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   TransactionTypePayBillOnline,
		Amount:            r.Amount,
		PartyA:            r.PhoneNumber,
		PartyB:            r.BusinessShortCode,
		PhoneNumber:       r.PhoneNumber,
		CallBackURL:       r.CallBackURL,
		AccountReference:  r.AccountReference,
		TransactionDesc:   r.TransactionDesc,
	}
	c.logger.Printf("[daraja][client] stk push start env=%s short_code=%s amount=%d reference=%s", c.environment, r.BusinessShortCode, r.Amount, r.AccountReference)

	var out StkPushResponse
	if apiErr := c.postJSON(ctx, opStkPush, pathStkPush, token, payload, &out); apiErr != nil {
		c.logger.Printf("[daraja][client] stk push failed env=%s status=%d err=%s", c.environment, apiErr.StatusCode, apiErr.Message)
		return StkPushResponse{}, &PaymentInitiationError{APIError: *apiErr}
	}
	c.logger.Printf("[daraja][client] stk push accepted env=%s checkout_request_id=%s response_code=%s", c.environment, out.CheckoutRequestID, out.ResponseCode)
	return out, nil
}

// StkPushQuery asks Daraja for the state of a previously initiated STK push.
func (c *Client) StkPushQuery(ctx context.Context, r StkPushQueryRequest) (StkPushQueryResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return StkPushQueryResponse{}, err
	}

	timestamp := Timestamp(c.now())
	payload := stkPushQueryPayload{
		BusinessShortCode: r.BusinessShortCode,
		Password:          Password(r.BusinessShortCode, r.PassKey, timestamp),
		Timestamp:         timestamp,
		CheckoutRequestID: r.CheckoutRequestID,
	}

	var out StkPushQueryResponse
	if apiErr := c.postJSON(ctx, opStkPushQuery, pathStkPushQuery, token, payload, &out); apiErr != nil {
		c.logger.Printf("[daraja][client] stk query failed env=%s checkout_request_id=%s status=%d err=%s", c.environment, r.CheckoutRequestID, apiErr.StatusCode, apiErr.Message)
		return StkPushQueryResponse{}, &PaymentQueryError{APIError: *apiErr}
	}
	return out, nil
}

func (c *Client) validToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token.usable(c.now()) {
		return c.token.value, true
	}
	return "", false
}

// accessToken returns the cached token or fetches a new one. Concurrent
// misses share a single fetch; each caller still stops waiting when its own
// context ends.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if token, ok := c.validToken(); ok {
		return token, nil
	}

	ch := c.fetch.DoChan("token", func() (interface{}, error) {
		if token, ok := c.validToken(); ok {
			return token, nil
		}
		return c.fetchToken(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", &AuthenticationError{APIError: APIError{Op: opAccessToken, Message: ctx.Err().Error(), Err: ctx.Err()}}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAccessToken, nil)
	if err != nil {
		return "", &AuthenticationError{APIError: APIError{Op: opAccessToken, Message: err.Error(), Err: err}}
	}
	req.Header.Set("Authorization", basicAuth(c.consumerKey, c.consumerSecret))

	var out accessTokenResponse
	if apiErr := c.do(req, opAccessToken, &out); apiErr != nil {
		c.logger.Printf("[daraja][client] token fetch failed env=%s status=%d err=%s", c.environment, apiErr.StatusCode, apiErr.Message)
		return "", &AuthenticationError{APIError: *apiErr}
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		c.logger.Printf("[daraja][client] token fetch failed env=%s err=missing access_token", c.environment)
		return "", &AuthenticationError{APIError: APIError{Op: opAccessToken, StatusCode: http.StatusOK, Message: "response has no access_token"}}
	}

	ttl := c.tokenTTL
	if lifetime := time.Duration(out.ExpiresIn) * time.Second; lifetime > 0 && lifetime < ttl {
		ttl = lifetime
	}

	c.mu.Lock()
	c.token = cachedToken{value: out.AccessToken, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	c.logger.Printf("[daraja][client] token refreshed env=%s ttl=%s", c.environment, ttl)

	return out.AccessToken, nil
}

func (c *Client) postJSON(ctx context.Context, op, path, token string, payload, out any) *APIError {
	body, err := json.Marshal(payload)
	if err != nil {
		return &APIError{Op: op, Message: err.Error(), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &APIError{Op: op, Message: err.Error(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) *APIError {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	var perr providerError
	_ = json.Unmarshal(body, &perr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(perr.ErrorMessage)
		if msg == "" {
			msg = fmt.Sprintf("unexpected status code %d", resp.StatusCode)
		}
		return &APIError{Op: op, StatusCode: resp.StatusCode, RequestID: perr.RequestID, ErrorCode: perr.ErrorCode, Message: msg}
	}
	if perr.ErrorMessage != "" && perr.ErrorCode != "" {
		return &APIError{Op: op, StatusCode: resp.StatusCode, RequestID: perr.RequestID, ErrorCode: perr.ErrorCode, Message: perr.ErrorMessage}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: "invalid response body: " + err.Error(), Err: err}
	}
	return nil
}
