package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("loud"))
}

func TestNew_Format(t *testing.T) {
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_LEVEL", "error")
	l := New()
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	assert.Equal(t, logrus.ErrorLevel, l.Level)

	t.Setenv("LOG_FORMAT", "")
	assert.IsType(t, &logrus.JSONFormatter{}, New().Formatter)
}
