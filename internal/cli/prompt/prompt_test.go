package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
)

func TestIsAborted(t *testing.T) {
	assert.True(t, IsAborted(promptui.ErrInterrupt))
	assert.True(t, IsAborted(promptui.ErrAbort))
	assert.True(t, IsAborted(fmt.Errorf("browse: %w", ErrAborted)))
	assert.False(t, IsAborted(errors.New("boom")))
	assert.False(t, IsAborted(nil))
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError(nil))
	assert.Equal(t, ErrAborted, wrapError(promptui.ErrInterrupt))

	other := errors.New("tty closed")
	assert.Equal(t, other, wrapError(other))
}

func TestConfirmOverwrite_Force(t *testing.T) {
	ok, err := ConfirmOverwrite("/tmp/x", true)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("Report.PDF", "report"))
	assert.True(t, containsFold("a.txt", ""))
	assert.False(t, containsFold("a.txt", "b"))
}
