package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	listJSON  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		eng, closer, err := openEngine()
		if err != nil {
			fatal("failed to open notes", err)
		}
		defer closer()

		notes := eng.Notes()
		selected := ""
		if n := eng.Selected(); n != nil {
			selected = n.ID
		}

		// Filter
		var filtered []core.Note
		for _, note := range notes {
			if listMatch != "" {
				ok, err := doublestar.Match(listMatch, note.Title)
				if err != nil {
					fatal("invalid match pattern", err)
				}
				if !ok {
					continue
				}
			}
			filtered = append(filtered, note)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("failed to encode JSON", err)
			}
			return
		}

		for _, note := range filtered {
			marker := " "
			if note.ID == selected {
				marker = "*"
			}
			updated := time.UnixMilli(note.UpdatedAt).Format("2006-01-02 15:04")
			fmt.Printf("%s %s  %s  %s\n", marker, note.ID, updated, note.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Filter notes by title glob")
}
