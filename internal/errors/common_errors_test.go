package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "render error type", errType: ErrTypeRender, expected: "RENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeValidation, Message: "inning must be 1 or 2"},
			wantMessage: "[VALIDATION] inning must be 1 or 2",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "replace match data",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] replace match data: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := NewParsingError("open input", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	wrapped := fmt.Errorf("ingest: %w", err)
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := (&AppError{Type: ErrTypeParsing, Message: "bad row"}).
		WithContext("line", 12).
		WithContext("column", "score")

	assert.Equal(t, 12, err.Context["line"])
	assert.Equal(t, "score", err.Context["column"])
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{name: "parsing", err: NewParsingError("bad csv", cause), wantType: ErrTypeParsing, wantMsg: "bad csv"},
		{name: "storage", err: NewStorageError("insert", cause), wantType: ErrTypeStorage, wantMsg: "insert"},
		{name: "validation", err: NewAppValidationError("bad choice"), wantType: ErrTypeValidation, wantMsg: "bad choice"},
		{name: "not found", err: NewNotFoundError("input file"), wantType: ErrTypeNotFound, wantMsg: "input file not found"},
		{name: "config", err: NewConfigError("load", cause), wantType: ErrTypeConfig, wantMsg: "load"},
		{name: "render", err: NewRenderError("save chart", cause), wantType: ErrTypeRender, wantMsg: "save chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}
