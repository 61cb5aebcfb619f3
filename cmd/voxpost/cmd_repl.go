package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpost/internal/conversation"
	"voxpost/internal/interpreter"
)

// replCmd drives an interactive editing session against the conversation
// engine. Generation and publishing are simulated: completing them is what
// the surrounding product's workers would normally do.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive editing session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

func runRepl(cmd *cobra.Command) error {
	p, cleanup, err := buildParser(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := conversation.NewEngine(p, logger)
	id := engine.StartSession()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "voxpost session started. Type an instruction, or \"exit\" to quit.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}

		reply, err := engine.Handle(cmd.Context(), id, line)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply.Text)

		// Simulate the async workers so the session keeps moving.
		if reply.Executed {
			switch reply.Command.Type {
			case interpreter.CommandGenerate:
				if err := engine.CompleteGeneration(id); err == nil {
					fmt.Fprintln(out, "(draft ready, you can edit or publish now)")
				}
			case interpreter.CommandPublish:
				if err := engine.CompletePublish(id); err == nil {
					fmt.Fprintln(out, "(published)")
				}
			}
		}
	}
	return scanner.Err()
}
