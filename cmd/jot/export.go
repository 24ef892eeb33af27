package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/export"
)

var (
	exportOut   string
	exportMatch string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes as Markdown files with frontmatter",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		eng, closer, err := openEngine()
		if err != nil {
			fatal("failed to open notes", err)
		}
		defer closer()

		written, err := export.Notes(eng.Notes(), exportOut, exportMatch)
		if err != nil {
			fatal("export failed", err)
		}
		fmt.Printf("Exported %d notes to %s\n", written, exportOut)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "export", "Output directory")
	exportCmd.Flags().StringVar(&exportMatch, "match", "", "Only export notes whose title matches this glob (supports ** patterns)")
}
