package main

import (
	"bytes"
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/varlinage/config"
	"github.com/viant/varlinage/export"
	"github.com/viant/varlinage/flow"
	"github.com/viant/varlinage/slicer"
	"github.com/viant/varlinage/trace"
	"io"
	"os"
)

var (
	sliceFormat   string
	sliceMaxSteps int
	sliceSentinel string
	sliceOutput   string
	sliceNoSlice  bool
)

var sliceCmd = &cobra.Command{
	Use:   "slice <trace URL>",
	Short: "Slice a recorded trace backward from its register call",
	Long: `Slice loads a trace document (yaml or json, optionally .gz or .zst compressed,
from a local path or any URL supported by afs), builds the flow graph and runs the
backward slice from the sentinel call.

Examples:
  varlinage slice trace.yaml
  varlinage slice --format=dot --output=/tmp/flow.dot trace.yaml.zst
  varlinage slice --max-steps=10000 s3://bucket/traces/run.json.gz`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		if err = cfg.Validate(); err != nil {
			return err
		}
		return runSlice(cmd.Context(), cfg, args[0], !sliceNoSlice, cmd.OutOrStdout())
	},
}

func init() {
	sliceCmd.Flags().StringVar(&sliceFormat, "format", "", "Output format: jsonl, yaml, graph or dot")
	sliceCmd.Flags().IntVar(&sliceMaxSteps, "max-steps", 0, "Stop slicing after N visited nodes (0 = unlimited)")
	sliceCmd.Flags().StringVar(&sliceSentinel, "sentinel", "", "Name of the call marking the target (default register)")
	sliceCmd.Flags().StringVar(&sliceOutput, "output", "", "Output URL (default stdout)")
	sliceCmd.Flags().BoolVar(&sliceNoSlice, "build-only", false, "Export the flow graph without slicing")
	rootCmd.AddCommand(sliceCmd)
}

// applyFlags overrides configuration with flags set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = sliceFormat
	}
	if flags.Changed("max-steps") {
		cfg.Slice.MaxSteps = sliceMaxSteps
	}
	if flags.Changed("sentinel") {
		cfg.Sentinel = sliceSentinel
	}
	if flags.Changed("output") {
		cfg.Output.URL = sliceOutput
	}
}

func runSlice(ctx context.Context, cfg *config.Config, URL string, slice bool, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger(os.Stderr)
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	fs := afs.New()
	tr, document, err := trace.NewLoader(fs).LoadTrace(ctx, URL)
	if err != nil {
		return err
	}
	sentinel := cfg.Sentinel
	if document.Sentinel != "" && sentinel == trace.DefaultSentinel {
		sentinel = document.Sentinel
	}
	builder := flow.New(flow.WithLogger(logger), flow.WithSentinel(sentinel))
	f, err := builder.Build(ctx, tr)
	if err != nil {
		if code := flow.CodeOf(err); code != "" {
			logger.Error("malformed trace", "url", URL, "code", string(code))
		}
		return fmt.Errorf("failed to build flow from %v: %w", URL, err)
	}
	if slice {
		result, err := slicer.New(slicer.WithLogger(logger), slicer.WithMaxSteps(cfg.Slice.MaxSteps)).Slice(f)
		if err != nil {
			if code := flow.CodeOf(err); code != "" {
				logger.Error("malformed flow", "url", URL, "code", string(code))
			}
			return fmt.Errorf("failed to slice %v: %w", URL, err)
		}
		logger.Info("slice", "target", f.TargetID, "steps", result.Steps, "relevant", len(result.Relevant()))
		if result.Truncated {
			logger.Warn("partial slice", "steps", result.Steps, "maxSteps", cfg.Slice.MaxSteps)
		}
	}
	if cfg.Output.URL == "" {
		return export.Write(stdout, f, format)
	}
	buffer := &bytes.Buffer{}
	if err = export.Write(buffer, f, format); err != nil {
		return err
	}
	if err = fs.Upload(ctx, cfg.Output.URL, 0644, buffer); err != nil {
		return fmt.Errorf("failed to write %v: %w", cfg.Output.URL, err)
	}
	logger.Info("flow written", "url", cfg.Output.URL, "format", string(format))
	return nil
}
