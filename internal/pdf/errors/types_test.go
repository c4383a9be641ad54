package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{ErrorTypeInvalidRequest, "INVALID_REQUEST"},
		{ErrorTypeTemplateNotFound, "TEMPLATE_NOT_FOUND"},
		{ErrorTypeInvalidTemplate, "INVALID_TEMPLATE"},
		{ErrorTypeFillFailed, "FILL_FAILED"},
		{ErrorTypeStoreFailure, "STORE_FAILURE"},
		{ErrorTypeNotFound, "NOT_FOUND"},
		{ErrorTypeSecurityRestriction, "SECURITY_RESTRICTION"},
		{ErrorTypeUnknown, "UNKNOWN"},
		{ErrorType(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errType.String())
		})
	}
}

func TestError_Message(t *testing.T) {
	err := New(ErrorTypeInvalidRequest, "no data provided")
	assert.Equal(t, "[INVALID_REQUEST] no data provided", err.Error())

	err = Wrap(ErrorTypeFillFailed, "failed to fill form", fmt.Errorf("boom")).WithContext("template.pdf")
	assert.Equal(t, "[FILL_FAILED] failed to fill form: template.pdf: boom", err.Error())
}

func TestError_IsAndAs(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	err := fmt.Errorf("generate: %w", Wrap(ErrorTypeTemplateNotFound, "template missing", cause))

	assert.True(t, errors.Is(err, ErrTemplateNotFound))
	assert.False(t, errors.Is(err, ErrFillFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrorTypeTemplateNotFound, TypeOf(err))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(cause))

	var typed *Error
	assert.True(t, errors.As(err, &typed))
	assert.Equal(t, "template missing", typed.Message)
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(ErrorTypeStoreFailure, "save", nil))
}
