package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select [id]",
	Short: "Select a note, recording a history entry",
	Long: `Select makes the note the current one and writes it to the route, so
back and forward can navigate between selections. The store itself accepts
any ID; the CLI checks membership so a typo does not select a ghost.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, closer, err := openEngine()
		if err != nil {
			fatal("failed to open notes", err)
		}
		defer closer()

		id := args[0]
		if _, ok := eng.Get(id); !ok {
			fmt.Fprintf(os.Stderr, "note not found: %s\n", id)
			os.Exit(1)
		}

		eng.Select(id)
		fmt.Printf("Selected: %s\n", id)
	},
}

var deselectCmd = &cobra.Command{
	Use:   "deselect",
	Short: "Clear the current selection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		eng, closer, err := openEngine()
		if err != nil {
			fatal("failed to open notes", err)
		}
		defer closer()

		eng.Deselect()
		fmt.Println("Selection cleared")
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(deselectCmd)
}
