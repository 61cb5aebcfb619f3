package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpost/internal/interpreter"
)

// teachCmd stores a phrase -> command mapping in the learned phrase store.
var teachCmd = &cobra.Command{
	Use:   "teach [command-type] [phrase...]",
	Short: "Teach the parser what a phrase means",
	Long: `Stores an exact phrase mapping consulted before generic matching.

Example:
  voxpost teach publish "ship the masterpiece"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := interpreter.CommandType(args[0])
		if !command.Valid() || command == interpreter.CommandUnknown {
			return fmt.Errorf("unknown command type %q", args[0])
		}
		phrase := strings.Join(args[1:], " ")

		s, _, err := openPhraseStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Teach(cmd.Context(), phrase, command, 0.95); err != nil {
			return err
		}
		fmt.Printf("Learned: %q -> %s\n", phrase, command)
		return nil
	},
}

// phrasesCmd lists and manages taught phrases.
var phrasesCmd = &cobra.Command{
	Use:   "phrases",
	Short: "List taught phrases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openPhraseStore()
		if err != nil {
			return err
		}
		defer s.Close()

		phrases, err := s.All(cmd.Context())
		if err != nil {
			return err
		}
		if len(phrases) == 0 {
			fmt.Println("No taught phrases.")
			return nil
		}
		for _, p := range phrases {
			fmt.Printf("%-40q %s (%.2f)\n", p.Phrase, p.Command, p.Confidence)
		}
		return nil
	},
}

func init() {
	forgetCmd := &cobra.Command{
		Use:   "forget [phrase...]",
		Short: "Remove a taught phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openPhraseStore()
			if err != nil {
				return err
			}
			defer s.Close()
			phrase := strings.Join(args, " ")
			if err := s.Forget(cmd.Context(), phrase); err != nil {
				return err
			}
			fmt.Printf("Forgot %q\n", phrase)
			return nil
		},
	}
	phrasesCmd.AddCommand(forgetCmd)
}
