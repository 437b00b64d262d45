package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"pixswap/contracts"
	"pixswap/converter"
	"pixswap/files_manager"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Batch-convert a directory through one preset",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir, _ := cmd.Flags().GetString("input")
		outputDir, _ := cmd.Flags().GetString("output")
		presetIndex, _ := cmd.Flags().GetInt("preset")

		preset, ok := contracts.PresetAt(presetIndex)
		if !ok {
			return fmt.Errorf("no preset at index %d (run 'pixswap presets')", presetIndex)
		}
		if preset.External {
			return fmt.Errorf("%s requires external processing; use 'pixswap pdf'", preset.Label)
		}

		if err := files_manager.CheckProvidedDirs(inputDir, outputDir); err != nil {
			return err
		}

		files, totalSize, err := files_manager.CollectByType(inputDir, preset.InputType)
		if err != nil {
			return fmt.Errorf("scanning input directory: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no %s files found in %s", preset.InputType, inputDir)
		}
		fmt.Printf("Converting %d files (%d bytes) with %s...\n", len(files), totalSize, preset.Label)

		engine, err := converter.ByName(cfg.Engine)
		if err != nil {
			return err
		}
		conv := converter.New(engine, cfg.Quality)

		startTime := time.Now()
		defer func() {
			fmt.Printf("Total time taken: %s\n", time.Since(startTime))
		}()

		maxConversions := max(runtime.NumCPU()-1, 1)
		sem := make(chan struct{}, maxConversions)

		var wg sync.WaitGroup
		var mu sync.Mutex
		failed := 0

		for _, file := range files {
			wg.Add(1)
			go func(file string) {
				defer wg.Done()

				sem <- struct{}{}        // Acquire a token
				defer func() { <-sem }() // Release the token

				if err := convertFile(conv, preset, file, outputDir); err != nil {
					fmt.Printf("Error converting %s: %v\n", file, err)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}(file)
		}
		wg.Wait()

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(files))
		}
		fmt.Println("Conversion completed successfully.")
		return nil
	},
}

func convertFile(conv *converter.Converter, preset contracts.Preset, file string, outputDir string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	result, err := conv.Convert(contracts.Upload{
		Name:         filepath.Base(file),
		DeclaredType: files_manager.MIMEForPath(file),
		Data:         data,
	}, preset)
	if err != nil {
		return err
	}

	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "." + result.Extension
	return os.WriteFile(filepath.Join(outputDir, name), result.Data, 0o644)
}

func init() {
	convertCmd.Flags().String("input", "", "input directory")
	convertCmd.Flags().String("output", "", "output directory")
	convertCmd.Flags().Int("preset", contracts.DefaultPresetIndex, "preset index (see 'pixswap presets')")
	_ = convertCmd.MarkFlagRequired("input")
	_ = convertCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(convertCmd)
}
