// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command usable-trace runs a YAML plan of nested traced scopes and prints
// the enter/leave trace of every run.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"code.hybscloud.com/usable/internal/plan"
	"code.hybscloud.com/usable/trace"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "usable-trace:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, jsonOutput bool) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	enc := zapcore.NewConsoleEncoder(cfg)
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel))
}

// run writes the trace and run reports to stdout; flag usage and parse
// errors go to stderr. A help request returns flag.ErrHelp.
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("usable-trace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	planPath := fs.String("plan", "", "path to the YAML plan")
	repeat := fs.Int("repeat", 1, "number of independent runs of the built plan")
	jsonOutput := fs.Bool("json", false, "log the trace as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *planPath == "" {
		return errors.New("missing -plan")
	}
	if *repeat < 1 {
		return fmt.Errorf("invalid -repeat %d", *repeat)
	}

	p, err := plan.Load(*planPath)
	if err != nil {
		return err
	}

	logger := newLogger(stdout, *jsonOutput).With(zap.String("plan", p.Name))
	defer func() { _ = logger.Sync() }()

	tracer := trace.New(logger)
	composed := p.Build(tracer)
	for i := range *repeat {
		report, err := plan.Execute(p, composed, tracer)
		if err != nil {
			logger.Error("run failed", zap.Int("run", i+1), zap.Error(err))
			return err
		}
		fmt.Fprintf(stdout, "run %d: %s (%s)\n", i+1, report.Value, report.Elapsed)
	}
	return nil
}
