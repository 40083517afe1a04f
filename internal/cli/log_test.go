package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slideshow/pkg/slides/sequence"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(10 * time.Millisecond)
	prog.done("test completed")

	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Errorf("progress.done() output = %q, should contain message", buf.String())
	}
}

func TestProgressReporter(t *testing.T) {
	var buf bytes.Buffer
	r := newProgressReporter(newLogger(&buf, log.InfoLevel), nil)

	r.Report(sequence.Progress{
		Step:      1024,
		Remaining: 2000,
		Total:     3025,
		PerStep:   183 * time.Microsecond,
		Estimated: 550 * time.Millisecond,
	})
	out := buf.String()
	for _, want := range []string{"2000/3025 remaining", "183µs/step", "est. 600ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output %q missing %q", out, want)
		}
	}

	// The final snapshot only logs at debug level.
	buf.Reset()
	r.Report(sequence.Progress{Step: 3024, Remaining: 0, Total: 3025})
	if buf.Len() != 0 {
		t.Errorf("final report logged at info level: %q", buf.String())
	}
}

func TestProgressReporterSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Solving...")
	r := newProgressReporter(newLogger(&buf, log.InfoLevel), s)

	r.Report(sequence.Progress{Remaining: 10, Total: 20, PerStep: time.Microsecond})
	if buf.Len() != 0 {
		t.Errorf("spinner reporter logged at info level: %q", buf.String())
	}
	if !strings.Contains(s.message, "10/20 remaining") {
		t.Errorf("spinner message = %q", s.message)
	}
}
