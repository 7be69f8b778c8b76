package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// serviceTagHook stamps every entry with the service name, so log lines
// stay attributable when aggregated alongside the other backend services.
type serviceTagHook struct {
	service string
}

func (h *serviceTagHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceTagHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = h.service
	return nil
}

// InitLogger configures the shared logger. LOG_LEVEL selects verbosity
// (default info); LOG_FORMAT=json switches to JSON for log shippers.
func InitLogger(serviceName string) {
	Logger.SetOutput(os.Stdout)

	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Logger.AddHook(&serviceTagHook{service: serviceName})
}
