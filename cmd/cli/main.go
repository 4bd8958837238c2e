package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

var (
	rootCmd = &cobra.Command{
		Use:   "forfeits",
		Short: "Forfeits dashboard client",
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dump various info",
	}

	endpoint string
	league   int
)

func initLogging() {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.ConsoleSeparator = " "
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)

	var err error
	log, err = config.Build()
	if err != nil {
		panic(err)
	}
}

func initCommands() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8080", "Dashboard address")
	rootCmd.PersistentFlags().IntVar(&league, "league", 0, "Mini-league id (0 means the server default)")

	dumpCmd.AddCommand(makeDumpStandingsCommand())
	dumpCmd.AddCommand(makeDumpChronologyCommand())
	rootCmd.AddCommand(makeOverrideCommand())
	rootCmd.AddCommand(dumpCmd)
}

func init() {
	initLogging()
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s", err.Error())
		os.Exit(1)
	}
}
