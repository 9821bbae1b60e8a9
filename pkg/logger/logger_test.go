package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Debug("hello", StringField("k", "v"), IntField("n", 1), ErrorField(errors.New("boom")))
}

func TestNew_DefaultsWhenEmpty(t *testing.T) {
	l, err := New("", "")
	require.NoError(t, err)
	assert.NotNil(t, l.Logger)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)
}
