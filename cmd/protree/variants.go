package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/protree/protree/pkg/templates"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List metadata variants available in the resolved template tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := templates.Locate(templates.ModeFull)
		if err != nil {
			return err
		}

		variants, err := templates.Variants(root)
		if err != nil {
			return err
		}
		if len(variants) == 0 {
			pterm.Info.Printfln("No metadata variants found in %s", root)
			return nil
		}

		fmt.Printf("Variants in %s:\n", root)
		for _, v := range variants {
			if v.Title != "" {
				fmt.Printf("  %-6s %s\n", v.Code, v.Title)
			} else {
				fmt.Printf("  %s\n", v.Code)
			}
		}
		return nil
	},
}
