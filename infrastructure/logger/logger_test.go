package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// bufferCloser lets a bytes.Buffer be used as a backend log writer.
type bufferCloser struct {
	bytes.Buffer
}

func (b *bufferCloser) Close() error {
	return nil
}

func TestBackendWriterLevels(t *testing.T) {
	backend := NewBackendWithFlags(0)

	traceBuffer := &bufferCloser{}
	warnBuffer := &bufferCloser{}
	err := backend.AddLogWriter(traceBuffer, LevelTrace)
	if err != nil {
		t.Fatalf("AddLogWriter unexpectedly failed: %s", err)
	}
	err = backend.AddLogWriter(warnBuffer, LevelWarn)
	if err != nil {
		t.Fatalf("AddLogWriter unexpectedly failed: %s", err)
	}

	err = backend.Run()
	if err != nil {
		t.Fatalf("Run unexpectedly failed: %s", err)
	}
	if err := backend.AddLogWriter(&bufferCloser{}, LevelTrace); err == nil {
		t.Fatalf("AddLogWriter on a running backend unexpectedly succeeded")
	}
	if err := backend.Run(); err == nil {
		t.Fatalf("Run on a running backend unexpectedly succeeded")
	}

	log := backend.Logger("TEST")
	log.SetLevel(LevelDebug)
	log.Debugf("some debug message")
	log.Warnf("some warn message")
	log.Tracef("some trace message")

	backend.Close()

	traceOutput := traceBuffer.String()
	if !strings.Contains(traceOutput, "some debug message") {
		t.Errorf("trace writer is missing the debug message. Got: %s", traceOutput)
	}
	if !strings.Contains(traceOutput, "some warn message") {
		t.Errorf("trace writer is missing the warn message. Got: %s", traceOutput)
	}
	if strings.Contains(traceOutput, "some trace message") {
		t.Errorf("trace message unexpectedly passed the logger's debug level. Got: %s", traceOutput)
	}
	if !strings.Contains(traceOutput, "[DBG] TEST") {
		t.Errorf("debug message is missing its header. Got: %s", traceOutput)
	}

	warnOutput := warnBuffer.String()
	if strings.Contains(warnOutput, "some debug message") {
		t.Errorf("debug message unexpectedly passed the warn writer's level. Got: %s", warnOutput)
	}
	if !strings.Contains(warnOutput, "some warn message") {
		t.Errorf("warn writer is missing the warn message. Got: %s", warnOutput)
	}
}

func TestBackendLogFile(t *testing.T) {
	backend := NewBackendWithFlags(0)

	// The log directory doesn't exist yet, so this also exercises its
	// creation.
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")
	err := backend.AddLogFile(logFile, LevelTrace)
	if err != nil {
		t.Fatalf("AddLogFile unexpectedly failed: %s", err)
	}
	err = backend.Run()
	if err != nil {
		t.Fatalf("Run unexpectedly failed: %s", err)
	}

	log := backend.Logger("TEST")
	log.Infof("some file message")
	backend.Close()

	logFileContents, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading the log file unexpectedly failed: %s", err)
	}
	if !strings.Contains(string(logFileContents), "some file message") {
		t.Errorf("log file is missing the logged message. Got: %s", logFileContents)
	}
}

func TestLogAndMeasureExecutionTime(t *testing.T) {
	backend := NewBackendWithFlags(0)

	buffer := &bufferCloser{}
	err := backend.AddLogWriter(buffer, LevelTrace)
	if err != nil {
		t.Fatalf("AddLogWriter unexpectedly failed: %s", err)
	}
	err = backend.Run()
	if err != nil {
		t.Fatalf("Run unexpectedly failed: %s", err)
	}

	log := backend.Logger("TEST")
	log.SetLevel(LevelDebug)
	onEnd := LogAndMeasureExecutionTime(log, "someFunction")
	onEnd()
	backend.Close()

	output := buffer.String()
	if !strings.Contains(output, "someFunction start") {
		t.Errorf("output is missing the start message. Got: %s", output)
	}
	if !strings.Contains(output, "someFunction end") {
		t.Errorf("output is missing the end message. Got: %s", output)
	}
}

func TestParseAndSetLogLevels(t *testing.T) {
	log := RegisterSubSystem("TSTS")

	err := ParseAndSetLogLevels("debug")
	if err != nil {
		t.Fatalf("ParseAndSetLogLevels unexpectedly failed: %s", err)
	}
	if log.Level() != LevelDebug {
		t.Errorf("subsystem level is %s, want %s", log.Level(), LevelDebug)
	}

	err = ParseAndSetLogLevels("TSTS=trace")
	if err != nil {
		t.Fatalf("ParseAndSetLogLevels unexpectedly failed: %s", err)
	}
	if log.Level() != LevelTrace {
		t.Errorf("subsystem level is %s, want %s", log.Level(), LevelTrace)
	}

	if err := ParseAndSetLogLevels("notalevel"); err == nil {
		t.Errorf("ParseAndSetLogLevels unexpectedly accepted an invalid level")
	}
	if err := ParseAndSetLogLevels("NOSS=debug"); err == nil {
		t.Errorf("ParseAndSetLogLevels unexpectedly accepted an unknown subsystem")
	}
}
