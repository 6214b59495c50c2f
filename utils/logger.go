package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
)

func newLogger(out *os.File, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(level)
	return l
}

// InitLogger applies the LOG_LEVEL environment override. Call once at
// startup; the package-level loggers are usable without it.
func InitLogger() {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		ErrorLogger.Printf("Invalid LOG_LEVEL %q, keeping defaults", raw)
		return
	}
	InfoLogger.SetLevel(level)
}
