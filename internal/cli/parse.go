package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/exam-dates/internal/exam"
	"github.com/spf13/cobra"
)

var flagParseFormat string

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [TEXT]",
		Short: "Parse one date description and show the moments found",
		Long: `Parse a single date field, as found on an exam card, and print the
timestamps recognized on each line. Reads standard input when TEXT is omitted.`,
		Example: `  exam-dates parse "Dato: 12. desember 2024 kl. 09:00"
  printf 'Utlevering: 19. november 2024 kl. 09:00\nInnlevering: 21. november 2024 kl. 13:00' | exam-dates parse --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().StringVar(&flagParseFormat, "format", "text", "Output format: text, json or table")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagParseFormat)
	if err != nil {
		return err
	}

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	// Shells pass "\n" literally; accept it as a line break.
	text = strings.ReplaceAll(text, `\n`, "\n")

	result := NewParseResult(text, exam.ParseField(text))
	if err := WriteParse(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
