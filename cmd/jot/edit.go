package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update a note's title or content",
	Args:  cobra.ExactArgs(1),
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

		var patch jot.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		eng.Update(id, patch)

		fmt.Printf("Note updated: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
}
