package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"voxpost/internal/interpreter"
)

// parseCmd classifies a single utterance and prints the command as JSON.
var parseCmd = &cobra.Command{
	Use:   "parse [utterance]",
	Short: "Parse one utterance into a typed command",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildParser(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		utterance := strings.Join(args, " ")
		result := p.Parse(cmd.Context(), utterance)
		if err := printCommand(result); err != nil {
			return err
		}
		if suggestions := p.Suggestions(result); len(suggestions) > 0 {
			fmt.Fprintln(os.Stderr, "Low confidence. Did you mean:")
			for _, s := range suggestions {
				fmt.Fprintln(os.Stderr, "  -", s)
			}
		}
		return nil
	},
}

// batchCmd reads utterances from stdin, one per line, and prints one JSON
// command per line in input order.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse utterances from stdin, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildParser(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		var utterances []string
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			utterances = append(utterances, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}

		for _, result := range p.ParseBatch(cmd.Context(), utterances) {
			if err := printCommand(result); err != nil {
				return err
			}
		}
		return nil
	},
}

func printCommand(cmd interpreter.ParsedCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
