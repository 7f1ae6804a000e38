package daraja_test

import (
	"encoding/base64"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"daraja_stk/pkg/daraja"
)

var fourteenDigits = regexp.MustCompile(`^\d{14}$`)

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "20240101120000", daraja.Timestamp(time.Date(2024, 1, 1, 12, 0, 0, 999, time.UTC)))

	nairobi := time.FixedZone("EAT", 3*60*60)
	assert.Equal(t, "20240101090000", daraja.Timestamp(time.Date(2024, 1, 1, 12, 0, 0, 0, nairobi)))

	for _, ts := range []time.Time{time.Now(), time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC), time.Unix(0, 0)} {
		assert.Regexp(t, fourteenDigits, daraja.Timestamp(ts))
	}
}

func TestPassword(t *testing.T) {
	got := daraja.Password("174379", testPassKey, "20240101120000")
	assert.Equal(t, "MTc0Mzc5YmZiMjc5ZjlhYTliZGJjZjE1OGU5N2RkNzFhNDY3Y2QyZTBjODkzMDU5YjEwZjc4ZTZiNzJhZGExZWQyYzkxOTIwMjQwMTAxMTIwMDAw", got)

	decoded, err := base64.StdEncoding.DecodeString(got)
	assert.NoError(t, err)
	assert.Equal(t, "174379"+testPassKey+"20240101120000", string(decoded))

	assert.Equal(t, got, daraja.Password("174379", testPassKey, "20240101120000"))
	assert.NotEqual(t, got, daraja.Password("174380", testPassKey, "20240101120000"))
	assert.NotEqual(t, got, daraja.Password("174379", testPassKey+"x", "20240101120000"))
	assert.NotEqual(t, got, daraja.Password("174379", testPassKey, "20240101120001"))
}

func TestParseEnvironment(t *testing.T) {
	env, err := daraja.ParseEnvironment(" Production ")
	assert.NoError(t, err)
	assert.Equal(t, daraja.Production, env)
	assert.Equal(t, "https://api.safaricom.co.ke", env.BaseURL())

	env, err = daraja.ParseEnvironment("sandbox")
	assert.NoError(t, err)
	assert.Equal(t, "https://sandbox.safaricom.co.ke", env.BaseURL())

	_, err = daraja.ParseEnvironment("live")
	assert.ErrorIs(t, err, daraja.ErrInvalidEnvironment)
}
