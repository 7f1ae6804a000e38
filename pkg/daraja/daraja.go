// Package daraja is a small client for the Safaricom Daraja M-Pesa API:
// OAuth token acquisition, STK push (Lipa Na M-Pesa Online) and STK push
// status query.
//
// A Client caches its access token until shortly before the provider says it
// expires, so callers can share one Client across requests. The client never
// retries; wrap calls with your own backoff when needed.
package daraja

import "sync"

// Daraja hands out one lazily built Client per environment, all sharing the
// same credentials and options.
type Daraja struct {
	cfg  Config
	opts []Option

	mu      sync.Mutex
	clients map[Environment]*Client
}

func New(cfg Config, opts ...Option) *Daraja {
	return &Daraja{
		cfg:     cfg,
		opts:    opts,
		clients: make(map[Environment]*Client, 2),
	}
}

// Client returns the client for env, building it on first use.
func (d *Daraja) Client(env Environment) (*Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.clients[env]; ok {
		return c, nil
	}
	c, err := NewClient(d.cfg, env, d.opts...)
	if err != nil {
		return nil, err
	}
	d.clients[env] = c
	return c, nil
}

// Sandbox panics if the credentials are missing; use Client to get the error.
func (d *Daraja) Sandbox() *Client {
	return d.mustClient(Sandbox)
}

// Production panics if the credentials are missing; use Client to get the error.
func (d *Daraja) Production() *Client {
	return d.mustClient(Production)
}

func (d *Daraja) mustClient(env Environment) *Client {
	c, err := d.Client(env)
	if err != nil {
		panic(err)
	}
	return c
}
