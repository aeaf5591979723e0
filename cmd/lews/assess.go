package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/lews/internal/api"
	"github.com/ZanzyTHEbar/lews/internal/lockin"
)

type assessOptions struct {
	file     string
	preset   string
	strategy string
	year     int
}

func newAssessCmd(a *app) *cobra.Command {
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score a dimension set and print the assessment as JSON",
		Long: "Reads a JSON object of dimension ratings from --file (\"-\" for stdin) or\n" +
			"takes the values of a named --preset, then prints the assessment.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.assess(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON file of dimension ratings, - for stdin")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "name of a built-in example, as listed by the presets command")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "weighted7 or equal9; inferred from the keys when empty")
	cmd.Flags().IntVar(&opts.year, "year", 0, "evaluate the lock-in timeline as of this year instead of now")
	cmd.MarkFlagsMutuallyExclusive("file", "preset")
	return cmd
}

func (a *app) assess(cmd *cobra.Command, opts *assessOptions) error {
	dims, strategy, err := readDimensions(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}

	schema, err := lockin.ResolveSchema(dims.Keys(), strategy)
	if err != nil {
		return err
	}

	store, err := a.loadStore()
	if err != nil {
		return err
	}
	var engineOpts []lockin.Option
	if opts.year > 0 {
		engineOpts = append(engineOpts, lockin.WithCurrentYear(lockin.FixedYear(opts.year)))
	}
	engine, err := a.newEngine(store, engineOpts...)
	if err != nil {
		return err
	}

	res, err := engine.Assess(dims, schema)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func readDimensions(stdin io.Reader, opts *assessOptions) (lockin.DimensionSet, string, error) {
	if opts.preset != "" {
		p, ok := lockin.FindPreset(opts.preset)
		if !ok {
			return nil, "", fmt.Errorf("unknown preset %q", opts.preset)
		}
		strategy := opts.strategy
		if strategy == "" {
			strategy = string(p.Strategy)
		}
		return p.Values, strategy, nil
	}

	var r io.Reader
	switch opts.file {
	case "":
		return nil, "", fmt.Errorf("one of --file or --preset is required")
	case "-":
		r = stdin
	default:
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open dimensions file: %w", err)
		}
		defer f.Close()
		r = f
	}

	dims, err := api.DecodeDimensions(r)
	if err != nil {
		return nil, "", err
	}
	return dims, opts.strategy, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
