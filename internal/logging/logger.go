package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared logrus instance for the whole service.
var Logger = logrus.New()

var once sync.Once

// Init configures the global logger: structured text to stderr plus a
// rotating file under logDir. Safe to call more than once.
func Init(logDir string) {
	once.Do(func() {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		Logger.SetLevel(logrus.InfoLevel)

		if logDir == "" {
			return
		}
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			if err := os.MkdirAll(logDir, 0o700); err != nil {
				Logger.Warnf("Failed to create log directory %s: %v", logDir, err)
				return
			}
		}

		logFile := &lumberjack.Logger{
			Filename:   logDir + "/ops-pilot.log",
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		Logger.SetOutput(io.MultiWriter(os.Stderr, logFile))
		Logger.Infof("Logger initialized, file output: %s", logFile.Filename)
	})
}
