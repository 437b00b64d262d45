// Package pdfexport assembles raster images into a single PDF. This is the
// external-processing path that the page's document presets point at.
package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/phpdave11/gofpdf"

	"pixswap/converter"
	"pixswap/files_manager"
	"pixswap/probe"
)

type Options struct {
	// Quality is the JPEG quality for page images.
	Quality int
	// Workers bounds concurrent decodes. Zero means 4.
	Workers int
}

type exportTask struct {
	filePath  string
	pageIndex int
}

type exportResult struct {
	imageId    string
	imgBuffer  *bytes.Buffer
	drawWidth  float64
	drawHeight float64
	pageIndex  int
	err        error
}

func exportWorker(engine converter.Engine, quality int, taskChan <-chan exportTask, resultChan chan<- exportResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range taskChan {
		data, err := os.ReadFile(task.filePath)
		if err != nil {
			resultChan <- exportResult{pageIndex: task.pageIndex, err: fmt.Errorf("reading %s: %w", task.filePath, err)}
			continue
		}
		mimeType := files_manager.MIMEForPath(task.filePath)

		out, err := engine.Transcode(data, mimeType, "image/jpeg", converter.EncodeOptions{
			Quality:      quality,
			FlattenWhite: true,
		})
		if err != nil {
			resultChan <- exportResult{pageIndex: task.pageIndex, err: fmt.Errorf("converting %s: %w", task.filePath, err)}
			continue
		}

		dpi := probe.DefaultDPI
		info := probe.Inspect(data, mimeType)
		if info.DPIX > 0 {
			dpi = info.DPIX
		}

		resultChan <- exportResult{
			imageId:    fmt.Sprintf("img_%d", task.pageIndex),
			imgBuffer:  bytes.NewBuffer(out.Data),
			drawWidth:  float64(out.Width) / dpi * 25.4,
			drawHeight: float64(out.Height) / dpi * 25.4,
			pageIndex:  task.pageIndex,
		}
	}
}

// Export converts every image in inputDir to a page of outputDir/<dir>.pdf.
// Page order follows directory order; decodes run on a worker pool and are
// reassembled in order.
func Export(inputDir string, outputDir string, opts Options) (string, error) {
	files, _, err := files_manager.CollectImages(inputDir)
	if err != nil {
		return "", fmt.Errorf("scanning input directory: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no image files found in %s", inputDir)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = converter.DefaultQuality
	}
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = 4
	}

	taskChan := make(chan exportTask)
	resultChan := make(chan exportResult, len(files))

	wg := &sync.WaitGroup{}
	engine := converter.PureEngine{}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go exportWorker(engine, quality, taskChan, resultChan, wg)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "mm"})
	pdf.SetMargins(0, 0, 0)

	resultsBuffer := make(map[int]exportResult)
	nextIndex := 0
	var firstErr error

	done := make(chan struct{})
	go func() {
		for result := range resultChan {
			resultsBuffer[result.pageIndex] = result

			for {
				result, ok := resultsBuffer[nextIndex]
				if !ok {
					break
				}
				if result.err != nil {
					if firstErr == nil {
						firstErr = result.err
					}
					delete(resultsBuffer, nextIndex)
					nextIndex++
					continue
				}

				pdf.AddPageFormat("P", gofpdf.SizeType{Wd: result.drawWidth, Ht: result.drawHeight})
				pdf.RegisterImageOptionsReader(
					result.imageId,
					gofpdf.ImageOptions{ImageType: "JPEG", ReadDpi: false},
					result.imgBuffer,
				)
				pdf.ImageOptions(
					result.imageId,
					0, 0,
					result.drawWidth, result.drawHeight,
					false,
					gofpdf.ImageOptions{ImageType: "JPEG", ReadDpi: false},
					0, "",
				)
				delete(resultsBuffer, nextIndex)
				nextIndex++
			}
		}
		close(done)
	}()

	for i, file := range files {
		taskChan <- exportTask{filePath: file, pageIndex: i}
	}
	close(taskChan)

	wg.Wait()
	close(resultChan)
	<-done

	if firstErr != nil {
		return "", firstErr
	}

	dirName := filepath.Base(filepath.Clean(inputDir))
	pdfFilePath := filepath.Join(outputDir, dirName+".pdf")
	if err := pdf.OutputFileAndClose(pdfFilePath); err != nil {
		return "", fmt.Errorf("saving PDF file: %w", err)
	}
	return pdfFilePath, nil
}
