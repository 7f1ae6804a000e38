package daraja

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidCallback = errors.New("daraja: callback has no stkCallback body")

// CallbackEnvelope is the body Daraja POSTs to the CallBackURL once the payer
// has acted on the prompt.
type CallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

// CallbackItem values are numbers or strings depending on Name.
type CallbackItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value,omitempty"`
}

// ParseCallback decodes a raw callback body.
func ParseCallback(raw []byte) (StkCallback, error) {
	var env CallbackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return StkCallback{}, fmt.Errorf("daraja: decode callback: %w", err)
	}
	if env.Body.StkCallback.CheckoutRequestID == "" {
		return StkCallback{}, ErrInvalidCallback
	}
	return env.Body.StkCallback, nil
}

func (c StkCallback) Succeeded() bool {
	return c.ResultCode == ResultCodeSuccess
}

// Item looks up a metadata value by name (Amount, MpesaReceiptNumber,
// TransactionDate, PhoneNumber, ...).
func (c StkCallback) Item(name string) (any, bool) {
	if c.CallbackMetadata == nil {
		return nil, false
	}
	for _, it := range c.CallbackMetadata.Item {
		if it.Name == name {
			return it.Value, it.Value != nil
		}
	}
	return nil, false
}

func (c StkCallback) Amount() (float64, bool) {
	v, ok := c.Item("Amount")
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func (c StkCallback) ReceiptNumber() string {
	return c.itemString("MpesaReceiptNumber")
}

func (c StkCallback) PhoneNumber() string {
	return c.itemString("PhoneNumber")
}

// itemString renders numeric values without exponent so phone numbers such as
// 254708374149 survive the float64 decoding.
func (c StkCallback) itemString(name string) string {
	v, ok := c.Item(name)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
