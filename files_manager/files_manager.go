package files_manager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// extension → declared MIME type, for batch inputs where no browser supplies
// a Content-Type.
var mimeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".bmp":  "image/bmp",
	".pdf":  "application/pdf",
}

// MIMEForPath returns the declared type for a file path, or "" when the
// extension is not one we handle.
func MIMEForPath(path string) string {
	return mimeByExt[strings.ToLower(filepath.Ext(path))]
}

// CheckProvidedDirs validates the batch input/output directory pair.
func CheckProvidedDirs(inputDir string, outputDir string) error {
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories required")
	}
	if stat, err := os.Stat(inputDir); err != nil || !stat.IsDir() {
		return fmt.Errorf("input directory does not exist or is not a directory")
	}
	if stat, err := os.Stat(outputDir); err != nil || !stat.IsDir() {
		return fmt.Errorf("output directory does not exist or is not a directory")
	}
	if filepath.Clean(inputDir) == filepath.Clean(outputDir) {
		return fmt.Errorf("input and output directories must be different")
	}
	return nil
}

// CollectByType lists files in dir (non-recursive) whose extension maps to
// mimeType, plus their total size. Hidden and AppleDouble files are skipped.
func CollectByType(dir string, mimeType string) ([]string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, err
	}
	files := make([]string, 0, len(entries))
	var size int64 = 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || strings.HasPrefix(entry.Name(), "._") {
			continue
		}
		if mimeByExt[strings.ToLower(filepath.Ext(entry.Name()))] != mimeType {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
		info, err := entry.Info()
		if err == nil {
			size += info.Size()
		}
	}
	return files, size, nil
}

// CollectImages lists every file in dir with a raster image extension, in
// directory order.
func CollectImages(dir string) ([]string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, err
	}
	files := make([]string, 0, len(entries))
	var size int64 = 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		mt := mimeByExt[strings.ToLower(filepath.Ext(entry.Name()))]
		if mt == "" || mt == "application/pdf" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
		info, err := entry.Info()
		if err == nil {
			size += info.Size()
		}
	}
	return files, size, nil
}
