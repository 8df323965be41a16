// Package main is the qwen2run CLI: a thin cobra wrapper around the
// session façade, used to drive a greedy generation loop against a
// config-described model shape.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-qwen2/qwen2core/tracelog"
)

var (
	traceEnabled bool
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "qwen2run",
	Short: "Run greedy generation against a qwen2-family decoder core",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "log each forward-pass stage")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(generateCmd)
}

func applyLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
	tracelog.SetLevel(level)
}
