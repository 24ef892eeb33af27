package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

var addContent string

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a new note and select it",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, closer, err := openEngine()
		if err != nil {
			fatal("failed to open notes", err)
		}
		defer closer()

		id := eng.Add()
		if len(args) > 0 || addContent != "" {
			patch := jot.Patch{Content: &addContent}
			if len(args) > 0 {
				patch.Title = &args[0]
			}
			eng.Update(id, patch)
		}

		fmt.Println(id)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addContent, "content", "", "Initial note content")
}
