package main

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/quickquote/internal/quote"
	"github.com/sells-group/quickquote/internal/rating"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Price a JSON-lines file of quote requests",
	Long:  "Each line is one get_quick_quote argument object. Results are printed as JSON lines in input order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rating.ValidateTables(); err != nil {
			return eris.Wrap(err, "batch: rating tables")
		}
		if err := rating.LoadOverrides(cfg.Rating.OverridesPath); err != nil {
			return eris.Wrap(err, "batch: rating overrides")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return eris.Wrap(err, "batch: open input")
		}
		defer f.Close() //nolint:errcheck

		var requests []map[string]any
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var req map[string]any
			if err := json.Unmarshal(line, &req); err != nil {
				return eris.Wrapf(err, "batch: parse line %d", len(requests)+1)
			}
			requests = append(requests, req)
		}
		if err := scanner.Err(); err != nil {
			return eris.Wrap(err, "batch: read input")
		}

		pipeline, err := buildPipeline()
		if err != nil {
			return err
		}

		results := make([]quote.Result, len(requests))

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)
		for i, req := range requests {
			i, req := i, req
			g.Go(func() error {
				results[i] = pipeline.Run(ctx, req)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch: run")
		}

		out := bufio.NewWriter(os.Stdout)
		defer out.Flush() //nolint:errcheck
		enc := json.NewEncoder(out)
		for _, result := range results {
			if err := enc.Encode(result); err != nil {
				return eris.Wrap(err, "batch: encode result")
			}
		}

		zap.L().Info("batch complete", zap.Int("requests", len(requests)))
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "concurrent pricing workers")
	rootCmd.AddCommand(batchCmd)
}
