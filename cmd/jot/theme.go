package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the theme preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark"},
	Run: func(cmd *cobra.Command, args []string) {
		eng, closer, err := openEngine()
		if err != nil {
			fatal("failed to open notes", err)
		}
		defer closer()

		if len(args) == 0 {
			fmt.Println(eng.Theme())
			return
		}

		theme := core.Theme(args[0])
		if err := eng.SetTheme(theme); err != nil {
			fatal("failed to set theme", err)
		}
		fmt.Printf("Theme set to %s\n", theme)
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
