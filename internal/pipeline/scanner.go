package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scan root.
	RelPath string
	// Key is the asset key (relpath without extension).
	Key string
	// Format is the source format (png, jpeg, webp, gif, bmp, tiff).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// ScanImages returns the image sources under input, which may be a
// single file or a directory walked recursively.
func ScanImages(input string) ([]Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		src, ok := newSource(filepath.Dir(input), input, info.Size())
		if !ok {
			return nil, fmt.Errorf("%s is not a recognized image file", input)
		}
		return []Source{src}, nil
	}

	var sources []Source
	err = filepath.Walk(input, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			// Skip hidden directories, but never the scan root itself.
			if strings.HasPrefix(fi.Name(), ".") && path != input {
				return filepath.SkipDir
			}
			return nil
		}
		if src, ok := newSource(input, path, fi.Size()); ok {
			sources = append(sources, src)
		}
		return nil
	})
	return sources, err
}

// newSource builds a Source for one file, reporting false when the
// extension is not a recognized image type.
func newSource(root, path string, size int64) (Source, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return Source{}, false
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return Source{}, false
	}

	// Key: relative path without extension, using forward slashes.
	key := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	key = filepath.ToSlash(key)

	// Normalize format name.
	format := strings.TrimPrefix(ext, ".")
	if format == "jpg" {
		format = "jpeg"
	}
	if format == "tif" {
		format = "tiff"
	}

	return Source{
		AbsPath: path,
		RelPath: filepath.ToSlash(relPath),
		Key:     key,
		Format:  format,
		Size:    size,
	}, true
}
