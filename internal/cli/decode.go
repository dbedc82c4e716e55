package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SyedDaiam9101/hmm-service/internal/inference"
	"github.com/SyedDaiam9101/hmm-service/internal/weather"
)

// ErrTooManyArgs is returned when decode gets more than one sequence.
var ErrTooManyArgs = errors.New("only one argument allowed")

// decodeResult is the JSON form of one decoded sequence.
type decodeResult struct {
	Input       string   `json:"input"`
	States      []string `json:"states"`
	Path        string   `json:"path"`
	Probability float64  `json:"probability"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [observations]",
		Short: "Print the most likely HOT/COLD sequence for a digit string",
		Long: "Decode a string of digits 1-3 into its most likely hidden weather sequence.\n" +
			"Each line of output is <observations>:<initial of each state>.\n" +
			"Without an argument the two built-in example sequences are decoded.",
		Example: "  hmm decode 331122313\n  hmm decode --format json 313",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return ErrTooManyArgs
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := weather.DefaultSequences
			if len(args) == 1 {
				inputs = args
			}
			return runDecode(cmd.Context(), cmd.OutOrStdout(), opts, inputs)
		},
	}
}

func runDecode(ctx context.Context, w io.Writer, opts *RootOptions, inputs []string) error {
	engine, err := inference.NewWeather()
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, input := range inputs {
		d, err := engine.Decode(ctx, input)
		if err != nil {
			return fmt.Errorf("decode %q: %w", input, err)
		}
		opts.Logger().Debug("decoded", "input", input, "probability", d.Probability)

		if opts.Format == "json" {
			res := decodeResult{
				Input:       input,
				States:      d.States,
				Path:        d.Path,
				Probability: d.Probability,
			}
			if err := json.NewEncoder(w).Encode(res); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%s:%s\n", input, d.Path); err != nil {
			return err
		}
	}
	return nil
}
