package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixswap/contracts"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the conversion presets",
	Run: func(cmd *cobra.Command, args []string) {
		for i, p := range contracts.Presets {
			marker := " "
			if i == contracts.DefaultPresetIndex {
				marker = "*"
			}
			note := ""
			if p.External {
				note = " (requires external processing)"
			}
			fmt.Printf("%s %d  %-12s %s -> %s%s\n", marker, i, p.Label, p.InputType, p.OutputType, note)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
