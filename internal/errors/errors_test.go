package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeStorage, TypeOf(fmt.Errorf("wrap: %w", NewStorageError("x", nil))))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "validation", err: NewAppValidationError("bad"), want: true},
		{name: "wrapped validation", err: fmt.Errorf("menu: %w", NewAppValidationError("bad")), want: true},
		{name: "parsing", err: NewParsingError("bad", nil), want: false},
		{name: "storage", err: NewStorageError("bad", nil), want: false},
		{name: "plain", err: errors.New("bad"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecoverable(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitConfig, ExitCode(NewConfigError("bad", nil)))
	assert.Equal(t, ExitFailure, ExitCode(NewParsingError("bad", nil)))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("bad")))
}

func TestContextOf(t *testing.T) {
	err := NewParsingError("bad row", nil).WithContext("line", 3)
	assert.Equal(t, 3, ContextOf(fmt.Errorf("wrap: %w", err))["line"])
	assert.Nil(t, ContextOf(errors.New("plain")))
}
