package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixswap/files_manager"
	"pixswap/pdfexport"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Assemble a directory of images into a single PDF",
	Long: `pdf is the external-processing path behind the document presets the
web page refuses to run in-process. Every image in the input directory
becomes one PDF page, in directory order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir, _ := cmd.Flags().GetString("input")
		outputDir, _ := cmd.Flags().GetString("output")
		quality, _ := cmd.Flags().GetInt("quality")

		if err := files_manager.CheckProvidedDirs(inputDir, outputDir); err != nil {
			return err
		}
		if quality <= 0 {
			quality = cfg.Quality
		}

		path, err := pdfexport.Export(inputDir, outputDir, pdfexport.Options{Quality: quality})
		if err != nil {
			return err
		}
		fmt.Printf("Converted to %s\n", path)
		return nil
	},
}

func init() {
	pdfCmd.Flags().String("input", "", "input directory of images")
	pdfCmd.Flags().String("output", "", "output directory for the PDF")
	pdfCmd.Flags().Int("quality", 0, "JPEG quality for page images (default from config)")
	_ = pdfCmd.MarkFlagRequired("input")
	_ = pdfCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(pdfCmd)
}
