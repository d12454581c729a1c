package env

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultLogLevel = 3
)

// set from MOTION_LOG_* variables
var LogStdout bool
var LogLevel int
var LogFile string

func loadLogSettings() {
	LogStdout = strings.ToLower(os.Getenv("MOTION_LOG_STDOUT")) == "true"
	LogFile = os.Getenv("MOTION_LOG_FILE")
	level, err := strconv.Atoi(os.Getenv("MOTION_LOG_LEVEL"))
	if err != nil {
		level = defaultLogLevel
	}
	LogLevel = level
}

// logWriters returns a console writer when console is set, and a writer
// appending to file when file is not empty
func logWriters(console bool, file string) ([]io.Writer, error) {
	var writers []io.Writer
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: TimeFormat})
	}
	if file != "" {
		fileWriter, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return writers, err
		}
		writers = append(writers, fileWriter)
	}
	return writers, nil
}

func configureGlobalLogger() {
	zerolog.TimeFieldFormat = TimeFormat
	if Mode == "DEV" {
		log.Logger = log.With().Caller().Logger()
	}

	writers, err := logWriters(Mode == "DEV" || LogStdout, LogFile)
	if len(writers) == 1 {
		log.Logger = log.Output(writers[0])
	} else if len(writers) > 1 {
		log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
	}
	if err != nil {
		log.Error().Str("context", "init").Str("path", LogFile).Err(err).Msg("log_file_failed")
	}

	zerolog.SetGlobalLevel(convertLevel(LogLevel))
}

func convertLevel(level int) zerolog.Level {
	switch level {
	case 0:
		return zerolog.FatalLevel
	case 1:
		return zerolog.ErrorLevel
	case 2:
		return zerolog.InfoLevel
	case 3:
		return zerolog.DebugLevel
	case 4:
		return zerolog.TraceLevel
	default:
		return zerolog.DebugLevel
	}
}
