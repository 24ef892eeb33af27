package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long: `Delete permanently removes a note. Deleting the selected note clears
the selection and rewrites the route so the deep link does not go stale.`,
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

		eng.Delete(id)
		fmt.Printf("Note deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
