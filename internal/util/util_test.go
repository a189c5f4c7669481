package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ValidationError("name is required"), http.StatusBadRequest},
		{"malformed", MalformedError("not a number"), http.StatusUnprocessableEntity},
		{"conflict", ConflictError("dup"), http.StatusConflict},
		{"not found", NotFoundError("missing"), http.StatusNotFound},
		{"range", RangeError("too big"), http.StatusUnprocessableEntity},
		{"wrapped", fmt.Errorf("outer: %w", NotFoundError("missing")), http.StatusNotFound},
		{"store failure", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestMalformedIsValidation(t *testing.T) {
	err := MalformedError("Duration must be a valid integer")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, "Duration must be a valid integer", err.Error())

	assert.NotErrorIs(t, ValidationError("x"), ErrMalformed)
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"150", 150, false},
		{" 42 ", 42, false},
		{"-50", -50, false},
		{"+7", 7, false},
		{"150.0", 0, true},
		{"1e3", 0, true},
		{"150.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"true", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseInt(tt.in)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.in)
			assert.NotErrorIs(t, err, ErrIntOverflow, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseIntOverflow(t *testing.T) {
	for _, in := range []string{"99999999999999999999", "-99999999999999999999"} {
		_, err := ParseInt(in)
		assert.ErrorIs(t, err, ErrIntOverflow, "input %q", in)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("17")
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)

	for _, bad := range []string{"0", "-1", "x", ""} {
		_, err := ParseID(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestRawText(t *testing.T) {
	assert.Nil(t, RawText(nil))
	assert.Nil(t, RawText([]byte(" null ")))

	tests := map[string]string{
		`150`:    "150",
		`"150"`:  "150",
		`" 7 "`:  " 7 ",
		`-50`:    "-50",
		`true`:   "true",
		`[1]`:    "[1]",
		`"a\"b"`: `a"b`,
		`45.0`:   "45",
		`1e3`:    "1000",
		`1e20`:   "100000000000000000000",
		`12.5`:   "12.5",
		`"1e3"`:  "1e3",
		`"45.0"`: "45.0",
	}
	for in, want := range tests {
		got := RawText([]byte(in))
		require.NotNil(t, got, in)
		assert.Equal(t, want, *got, in)
	}
}
