package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note, the selected one when no ID is given",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, closer, err := openEngine()
		if err != nil {
			fatal("failed to open notes", err)
		}
		defer closer()

		var note *jot.Note
		if len(args) > 0 {
			if n, ok := eng.Get(args[0]); ok {
				note = &n
			}
		} else {
			note = eng.Selected()
		}
		if note == nil {
			fmt.Fprintln(os.Stderr, "no note to show")
			os.Exit(1)
		}

		fmt.Printf("id:      %s\n", note.ID)
		fmt.Printf("title:   %s\n", note.Title)
		fmt.Printf("updated: %s\n", time.UnixMilli(note.UpdatedAt).Format(time.RFC3339))
		fmt.Println()
		fmt.Println(note.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
