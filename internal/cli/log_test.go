package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		log   func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("saved") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("applied batch") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("applied batch") }, true},
		{"error at info", log.InfoLevel, func(l *log.Logger) { l.Error("save failed") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithBoard(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))
	ctx = withBoard(ctx, "team")

	loggerFromContext(ctx).Info("opened", "user", cliUser)

	out := buf.String()
	for _, want := range []string{"opened", "board=team", "user=cli"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	ctx := withBoard(withLogger(context.Background(), newLogger(&buf, log.InfoLevel)), "retro")

	newProgress(ctx).done("generate", "template", "moscow", "ops", 2)

	out := buf.String()
	for _, want := range []string{"generate", "board=retro", "template=moscow", "ops=2", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield log.Default()")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
