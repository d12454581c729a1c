package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestConvertLevel(t *testing.T) {
	cases := map[int]zerolog.Level{
		0:  zerolog.FatalLevel,
		1:  zerolog.ErrorLevel,
		2:  zerolog.InfoLevel,
		3:  zerolog.DebugLevel,
		4:  zerolog.TraceLevel,
		42: zerolog.DebugLevel,
	}
	for in, expected := range cases {
		if got := convertLevel(in); got != expected {
			t.Errorf("convertLevel(%d): got %v but expected %v", in, got, expected)
		}
	}
}

func TestDefaults(t *testing.T) {
	if Workers < 1 {
		t.Errorf("Workers should default to a positive value, got %d", Workers)
	}
	if len(Port) < 2 {
		t.Errorf("Port should have a default, got %q", Port)
	}
}

func TestLoadLogSettings(t *testing.T) {
	t.Cleanup(loadLogSettings)

	t.Setenv("MOTION_LOG_STDOUT", "TRUE")
	t.Setenv("MOTION_LOG_LEVEL", "not-a-level")
	t.Setenv("MOTION_LOG_FILE", "motion.log")
	loadLogSettings()
	if !LogStdout || LogLevel != defaultLogLevel || LogFile != "motion.log" {
		t.Errorf("unexpected settings %v %v %q", LogStdout, LogLevel, LogFile)
	}

	t.Setenv("MOTION_LOG_LEVEL", "1")
	loadLogSettings()
	if LogLevel != 1 {
		t.Errorf("got level %d but expected 1", LogLevel)
	}
}

func TestLogWriters(t *testing.T) {

	t.Run("No writer", func(t *testing.T) {
		writers, err := logWriters(false, "")
		if err != nil || len(writers) != 0 {
			t.Errorf("got %d writers, err %v", len(writers), err)
		}
	})

	t.Run("Console and file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "motion.log")
		writers, err := logWriters(true, path)
		if err != nil || len(writers) != 2 {
			t.Fatalf("got %d writers, err %v", len(writers), err)
		}
		if f, ok := writers[1].(*os.File); ok {
			defer f.Close()
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("log file should be created: %v", err)
		}
	})

	t.Run("Keep console when file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "motion.log")
		writers, err := logWriters(true, path)
		if err == nil || len(writers) != 1 {
			t.Errorf("got %d writers, err %v", len(writers), err)
		}
	})
}
