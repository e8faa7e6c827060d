package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Configure it once at startup.
var Log = logrus.New()

// ConfigureLogger sets level and output format ("text" or "json").
func ConfigureLogger(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	Log.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// LogEvent writes a standardized line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	Log.WithFields(logrus.Fields{
		"module":     strings.ToLower(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// LogError is LogEvent at error level with the error attached.
func LogError(requestID, module, action string, err error) {
	Log.WithFields(logrus.Fields{
		"module":     strings.ToLower(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).WithError(err).Error(action + " failed")
}
