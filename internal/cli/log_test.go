package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("test message")
	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}

	buf.Reset()
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug output should be filtered at info level")
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), logger)
	if loggerFromContext(ctx) != logger {
		t.Error("loggerFromContext should return the attached logger")
	}

	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to a default logger")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Finished")

	if !bytes.Contains(buf.Bytes(), []byte("Finished")) {
		t.Errorf("progress output = %q, want it to contain the message", buf.String())
	}
}
