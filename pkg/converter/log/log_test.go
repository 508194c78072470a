package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedLogger(t *testing.T) {
	out := &bytes.Buffer{}
	SetOutput(out)
	defer SetOutput(logrus.StandardLogger().Out)
	defer base.SetLevel(base.GetLevel())

	require.NoError(t, SetLevel("WARN"))
	logger := NamedLogger("tests")

	logger.Info("hidden")
	assert.Empty(t, out.String())

	logger.Warn("visible")
	assert.Contains(t, out.String(), "[log_test.go")
	assert.Contains(t, out.String(), "visible")
	assert.Contains(t, out.String(), "logger=tests")
}

func TestSetLevel(t *testing.T) {
	defer base.SetLevel(base.GetLevel())

	assert.Error(t, SetLevel("verbose"))
	assert.NoError(t, SetLevel("trace"))
	assert.Equal(t, logrus.TraceLevel, base.GetLevel())

	assert.True(t, IsValidLevel("Debug"))
	assert.False(t, IsValidLevel("loud"))
}
