package logconfig

import (
	myLogger "github.com/sirupsen/logrus"
)

// This output format is used in tests (has terminal).
func ConfigDebugLogger() {
	myLogger.SetReportCaller(true)
	myLogger.SetLevel(myLogger.DebugLevel)
	myLogger.SetFormatter(&myLogger.TextFormatter{
		ForceColors:            true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}

func ConfigInfoLogger() {
	myLogger.SetReportCaller(false)
	myLogger.SetLevel(myLogger.InfoLevel)
	myLogger.SetFormatter(&myLogger.TextFormatter{
		ForceColors:            true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}

// This output format is used in production (timestamped, machine readable).
func ConfigProductionLogger() {
	myLogger.SetReportCaller(false)
	myLogger.SetLevel(myLogger.InfoLevel)
	myLogger.SetFormatter(&myLogger.JSONFormatter{})
}

// ConfigByName selects a logger profile from a config string.
// Unrecognized names fall back to the production profile.
func ConfigByName(name string) {
	switch name {
	case "debug":
		ConfigDebugLogger()
	case "info":
		ConfigInfoLogger()
	default:
		ConfigProductionLogger()
	}
}
