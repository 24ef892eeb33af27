package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Navigate to the previous history entry",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		navigate(func(eng navigator) error { return eng.Back() })
	},
}

var forwardCmd = &cobra.Command{
	Use:   "forward",
	Short: "Navigate to the next history entry",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		navigate(func(eng navigator) error { return eng.Forward() })
	},
}

type navigator interface {
	Back() error
	Forward() error
}

func navigate(move func(navigator) error) {
	eng, closer, err := openEngine()
	if err != nil {
		fatal("failed to open notes", err)
	}
	defer closer()

	if err := move(eng); err != nil {
		fatal("navigation failed", err)
	}

	if note := eng.Selected(); note != nil {
		fmt.Printf("Selected: %s  %s\n", note.ID, note.Title)
		return
	}
	fmt.Println("No selection")
}

func init() {
	rootCmd.AddCommand(backCmd)
	rootCmd.AddCommand(forwardCmd)
}
