// Command feedreplay replays a captured market-data command stream
// through a feed dispatcher and prints the formatted output lines it
// produces.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mkhoshkam/feedreplay/internal/config"
	"github.com/mkhoshkam/feedreplay/internal/dispatcher"
	"github.com/mkhoshkam/feedreplay/internal/sink"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedreplay <file> [<symbol>]",
		Short: "Replay a market-data command stream and print derived output",
		Args:  cobra.RangeArgs(1, 2),
	}
	v := config.Bind(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(config.Load(v), args)
	}
	return cmd
}

func run(cfg config.Config, args []string) error {
	logger := newLogger(cfg)
	sessionID := uuid.New().String()
	logger = logger.With().Str("session_id", sessionID).Logger()

	file := args[0]
	var symbol string
	if len(args) == 2 {
		symbol = args[1]
	}

	f, err := os.Open(file)
	if err != nil {
		logger.Error().Err(err).Str("file", file).Msg("file does not exist")
		fmt.Fprintf(os.Stderr, "File %s does not exists\n", file)
		os.Exit(1)
	}
	defer f.Close()

	logger.Info().Str("file", file).Str("symbol", symbol).Msg("replay starting")

	d := dispatcher.New(symbol, sink.DefaultOutput(), sink.Zerolog(logger))

	scanner := bufio.NewScanner(f)
	var lines int
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		d.ProcessCommand(line)
		lines++
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("error reading input")
		return err
	}

	logger.Info().Int("lines_processed", lines).Msg("replay finished")
	return nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w = os.Stderr
	var logger zerolog.Logger
	if cfg.LogFormat == "json" {
		logger = zerolog.New(w)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
