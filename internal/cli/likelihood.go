package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SyedDaiam9101/hmm-service/internal/inference"
)

// NewLikelihoodCommand creates the likelihood command.
func NewLikelihoodCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "likelihood <observations>...",
		Short:   "Print the probability of each digit string under the weather model",
		Example: "  hmm likelihood 313 331122313",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLikelihood(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}
}

func runLikelihood(ctx context.Context, w io.Writer, opts *RootOptions, inputs []string) error {
	engine, err := inference.NewWeather()
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, input := range inputs {
		p, err := engine.Likelihood(ctx, input)
		if err != nil {
			return fmt.Errorf("likelihood %q: %w", input, err)
		}

		if opts.Format == "json" {
			err = json.NewEncoder(w).Encode(map[string]any{"input": input, "likelihood": p})
		} else {
			_, err = fmt.Fprintf(w, "%s:%g\n", input, p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
