package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevel(t *testing.T) {
	defer Setup(false)

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Equal(t, log.DebugLevel, Default("cli").GetLevel())

	Setup(false)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.Equal(t, log.InfoLevel, New("srv").GetLevel())
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "ipc", log.WarnLevel, false, false, log.LogfmtFormatter)

	l.Info("dropped")
	l.Warn("kept", "id", 7)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "msg=kept")
	assert.Contains(t, out, "id=7")
}
