package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/specialistvlad/trainflags/internal/cli"
	"github.com/specialistvlad/trainflags/internal/core"
	"github.com/specialistvlad/trainflags/internal/ctxlog"
)

// main is the entrypoint for the demo program.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, color.Red.Sprint(exitErr.Message))
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, color.Red.Sprint(err.Error()))
		os.Exit(1)
	}
}

// run parses the arguments and reports the resolved configuration. Only the
// hooks line goes to outW; logs go to logW.
func run(outW, logW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	return report(ctx, outW, cfg.Settings)
}

func report(ctx context.Context, outW io.Writer, s *core.Settings) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolved training configuration.",
		"data_dir", s.DataDir,
		"model_dir", s.ModelDir,
		"train_epochs", s.TrainEpochs,
		"batch_size", s.BatchSize,
		"multi_gpu", s.MultiGPU,
		"synthetic_data", s.UseSyntheticData,
	)
	logger.Info("Numeric precision selected.", "dtype", s.Dtype.String(), "loss_scale", s.LossScale)

	if _, err := fmt.Fprintln(outW, strings.Join(s.Hooks, ",")); err != nil {
		return fmt.Errorf("failed to write hooks: %w", err)
	}
	return nil
}
