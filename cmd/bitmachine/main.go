// Command bitmachine runs a bitmachine program image: a flat sequence of
// 32-bit big-endian words, given as a single positional argument.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/umvm/bitmachine/internal/logging"
	"github.com/umvm/bitmachine/internal/machine"
)

// errWrongArity signals a CLI invocation with other than one positional
// argument; it is handled separately from every other error so that its
// message goes to stdout, not stderr.
var errWrongArity = fmt.Errorf("%w: wrong number of arguments", machine.ErrInvalidInput)

func main() {
	var trace, quiet bool

	cmd := &cobra.Command{
		Use:           "bitmachine <image>",
		Short:         "Run a bitmachine program image",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errWrongArity
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], trace, quiet)
		},
	}
	cmd.Flags().BoolVarP(&trace, "trace", "v", false, "trace every executed instruction")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress lifecycle log lines")

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errWrongArity) {
			fmt.Println("usage: bitmachine [-v] [-q] <image>")
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "bitmachine:", err)
		os.Exit(1)
	}
}

func run(path string, trace, quiet bool) error {
	level := logging.LevelFromEnv()
	if trace {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	logger := logging.New(level)

	fp, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", machine.ErrInvalidInput, err)
	}
	defer fp.Close()

	words, err := machine.LoadProgram(fp)
	if err != nil {
		return err
	}
	logger.Info("loaded program", "path", path, "words", len(words))

	vm := machine.New(words, os.Stdin, os.Stdout, logger, trace)
	defer vm.Shutdown()

	if err := vm.Run(); err != nil {
		logger.Error("machine fault", "error", err)
		return err
	}
	logger.Info("halted")
	return nil
}
