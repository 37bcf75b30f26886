package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderWrapsAndCategorizes(t *testing.T) {
	t.Parallel()

	base := stderrors.New("disk full")
	err := New(base).
		Category(CategoryFileIO).
		Context("operation", "copy-image").
		Context("file", "shoe.jpg").
		Build()

	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, CategoryFileIO, err.Category)
	assert.Equal(t, "copy-image", err.Context["operation"])
	assert.Equal(t, "shoe.jpg", err.Context["file"])
	assert.False(t, err.Timestamp.IsZero())

	assert.True(t, stderrors.Is(err, base))
}

func TestNewfFormatsMessage(t *testing.T) {
	t.Parallel()

	err := Newf("bad value %d", 42).Build()
	assert.Equal(t, "bad value 42", err.Error())
	assert.Equal(t, CategoryGeneric, err.Category)
}

func TestUnwrapThroughWrapping(t *testing.T) {
	t.Parallel()

	base := stderrors.New("row not found")
	enhanced := New(base).Category(CategoryDatabase).Build()
	wrapped := fmt.Errorf("processing group: %w", enhanced)

	var ee *EnhancedError
	require.True(t, stderrors.As(wrapped, &ee))
	assert.Equal(t, CategoryDatabase, ee.Category)
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestGetCategory(t *testing.T) {
	t.Parallel()

	err := New(stderrors.New("boom")).Category(CategoryValidation).Build()
	assert.Equal(t, CategoryValidation, GetCategory(err))
	assert.Equal(t, CategoryValidation, GetCategory(fmt.Errorf("outer: %w", err)))
	assert.Equal(t, CategoryGeneric, GetCategory(stderrors.New("plain")))
}

func TestIsMatchesOnCategory(t *testing.T) {
	t.Parallel()

	a := New(stderrors.New("first")).Category(CategoryDatabase).Build()
	b := New(stderrors.New("second")).Category(CategoryDatabase).Build()
	c := New(stderrors.New("third")).Category(CategoryFileIO).Build()

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}
