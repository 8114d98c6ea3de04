// tuneGUI - parameter tuning panel for Okanagan Marine Robotics vehicles
package main

import (
	"flag"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/gui"
)

const AppID = "com.okmr.tunegui"

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	masterURI := flag.String("master", "", "ROS master uri (hostname:port) to connect to at startup")
	paramFile := flag.String("file", "", "YAML parameter file to open at startup")
	missionTopic := flag.String("mission-topic", "/mission_command", "Mission command topic")
	pollInterval := flag.Duration("poll", time.Second, "Live parameter polling interval")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"debug_mode": *debugMode,
	}).Info("Starting tuneGUI")

	myApp := app.NewWithID(AppID)

	mainApp := gui.NewApplication(myApp, logger, gui.Options{
		MasterURI:    *masterURI,
		ParamFile:    *paramFile,
		MissionTopic: *missionTopic,
		PollInterval: *pollInterval,
	})

	if *masterURI != "" {
		if err := mainApp.ConnectLive(*masterURI); err != nil {
			logger.WithError(err).Error("Failed to connect to ROS master")
		}
	}

	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
