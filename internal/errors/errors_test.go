package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewAppValidationError("cutoff year out of range"),
			want: "[VALIDATION] cutoff year out of range",
		},
		{
			name: "with cause",
			err:  NewLoadError("open athletes file", fmt.Errorf("no such file")),
			want: "[LOAD] open athletes file: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewLoadError("open regions file", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("run pipeline: %w", err), &appErr))
	assert.Equal(t, ErrTypeLoad, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewIntegrityError("unmatched NOC codes after join", nil).
		WithContext("noc", "XYZ").
		WithContext("rows", 12)

	assert.Equal(t, "XYZ", err.Context["noc"])
	assert.Equal(t, 12, err.Context["rows"])
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(NewIntegrityError("boom", nil), ErrTypeIntegrity))
	assert.False(t, IsType(NewIntegrityError("boom", nil), ErrTypeLoad))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrTypeLoad))
}

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{"validation maps to 400", NewAppValidationError("bad season"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"not found maps to 404", NewNotFoundError("report"), http.StatusNotFound, "NOT_FOUND"},
		{"integrity maps to 500", NewIntegrityError("null region", nil), http.StatusInternalServerError, "INTEGRITY_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromAppError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}
