package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	base := fmt.Errorf("curve did not converge")
	err := New(base).
		Category(CategoryCurveFitting).
		Context("centroid_kev", 661.7).
		Build()

	require.NotNil(t, err)
	assert.Equal(t, string(CategoryCurveFitting), err.GetCategory())
	assert.Contains(t, err.Error(), "curve did not converge")
	assert.Equal(t, 661.7, err.GetContext()["centroid_kev"])
	assert.ErrorIs(t, err, base)
	assert.False(t, err.GetTimestamp().IsZero())
}

func TestNewf(t *testing.T) {
	err := Newf("bad channel %d", 42).Category(CategorySpectrum).Build()
	assert.Contains(t, err.Error(), "bad channel 42")
	assert.True(t, IsCategory(err, CategorySpectrum))
	assert.False(t, IsCategory(err, CategoryDatabase))
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("ROI configuration for isotope", "Unobtainium-999")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Unobtainium-999")

	assert.False(t, IsNotFound(NewStd("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestValidationError(t *testing.T) {
	err := ValidationError("counts must be non-negative")
	assert.True(t, IsCategory(err, CategoryValidation))
}

func TestFileError(t *testing.T) {
	err := FileError(fmt.Errorf("permission denied"), "/tmp/spectrum.json")
	assert.Equal(t, "/tmp/spectrum.json", err.GetContext()["path"])
}

func TestComponentDetection(t *testing.T) {
	err := Newf("boom").Build()
	assert.NotEmpty(t, err.GetComponent(), "the component is inferred from the call stack")
}

func TestStdlibPassthrough(t *testing.T) {
	a := NewStd("a")
	b := NewStd("b")

	joined := Join(a, b)
	assert.True(t, Is(joined, a))
	assert.True(t, Is(joined, b))

	var target *EnhancedError
	wrapped := New(a).Build()
	assert.True(t, As(wrapped, &target))
	assert.Equal(t, a, Unwrap(wrapped))
}
