package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/fitquest/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 10
	defaultMaxAgeDays = 30
)

type LoggerSetupParams struct {
	// LogFileName is the rotated log file, ".log" is appended if missing.
	// Empty means console only.
	LogFileName string
	// LogToStdout also writes to Console when a log file is set.
	LogToStdout bool
	// Console defaults to os.Stdout. The MCP binary passes os.Stderr since
	// stdout carries the protocol.
	Console       io.Writer
	LogLevel      string
	LogFormatJSON bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetOutput(output(params))
}

func setupSentry(params LoggerSetupParams) {
	if err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	}); err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infof("sentry hook added for env [%s]", params.Environment)
}

func output(params LoggerSetupParams) io.Writer {
	console := params.Console
	if console == nil {
		console = os.Stdout
	}

	if params.LogFileName == "" {
		return console
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    valueOr(params.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: valueOr(params.MaxBackups, defaultMaxBackups),
		MaxAge:     valueOr(params.MaxAgeDays, defaultMaxAgeDays),
		LocalTime:  false, // UTC
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(console, rotated)
	}
	return rotated
}

func valueOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// GetLevel parses a level name, anything unknown falls back to trace.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
