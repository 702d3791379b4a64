package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/quickquote/internal/rating"
)

var quoteFile string

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a single quote request from a JSON file or stdin",
	Long:  "Reads one JSON argument object (the get_quick_quote tool payload), runs the full pipeline, and prints the result as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rating.ValidateTables(); err != nil {
			return eris.Wrap(err, "quote: rating tables")
		}
		if err := rating.LoadOverrides(cfg.Rating.OverridesPath); err != nil {
			return eris.Wrap(err, "quote: rating overrides")
		}

		var data []byte
		var err error
		if quoteFile == "" || quoteFile == "-" {
			data, err = os.ReadFile("/dev/stdin")
		} else {
			data, err = os.ReadFile(quoteFile)
		}
		if err != nil {
			return eris.Wrap(err, "quote: read input")
		}

		var quoteArgs map[string]any
		if err := json.Unmarshal(data, &quoteArgs); err != nil {
			return eris.Wrap(err, "quote: parse input")
		}

		pipeline, err := buildPipeline()
		if err != nil {
			return err
		}

		result := pipeline.Run(cmd.Context(), quoteArgs)
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "quote: encode result")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteFile, "file", "f", "", "JSON input file (default stdin)")
	rootCmd.AddCommand(quoteCmd)
}
