package global

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = NewLogger()

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.Level = logrus.InfoLevel
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	return log
}

func SetLogLevel(env string) {
	if env == "production" {
		Log.SetLevel(logrus.InfoLevel)
		return
	}
	Log.SetLevel(logrus.DebugLevel)
}
