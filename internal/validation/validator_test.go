package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Language string `json:"language" validate:"omitempty,max=8,printascii"`
	Mode     string `json:"mode,omitempty" validate:"required,oneof=a b"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, New().Validate(sample{Language: "en-US", Mode: "a"}))
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	err := New().Validate(sample{Language: strings.Repeat("x", 9), Mode: "c"})
	require.Error(t, err)

	var ferr *FieldsError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "must not exceed 8 characters", ferr.Fields["language"])
	assert.Equal(t, "must be one of: a b", ferr.Fields["mode"])
}

func TestFieldsError_StableOrder(t *testing.T) {
	err := &FieldsError{Fields: map[string]string{
		"mode":     "is required",
		"language": "is invalid",
		"beta":     "is invalid",
	}}
	want := "validation failed: beta is invalid, language is invalid, mode is required"
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, err.Error())
	}
}
