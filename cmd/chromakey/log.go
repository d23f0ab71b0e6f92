package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func registerLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("loglevel", "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("logformat", "text", "set the log format (text, json)")
}

// setupLogging configures the standard logrus logger from the persistent
// flags. Logs go to stderr so command output stays clean.
func setupLogging(cmd *cobra.Command) error {
	levelStr, _ := cmd.Flags().GetString("loglevel")
	format, _ := cmd.Flags().GetString("logformat")

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", levelStr)
	}

	var formatter logrus.Formatter
	switch format {
	case "json":
		formatter = &logrus.JSONFormatter{}
	case "text":
		formatter = &logrus.TextFormatter{}
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	logger.SetFormatter(formatter)
	return nil
}
