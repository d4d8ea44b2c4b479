package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "fitcli/internal/errors"
)

// DataExtensions are the file types the activity table can be read from
var DataExtensions = []string{".csv", ".xlsx", ".xlsm"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDataFiles lists the CSV and Excel files of a dataset directory,
// sorted by name.
func (d *Discovery) FindDataFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read directory %s", fullPath), err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsDataFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// FindDatasetFile locates name inside dir. An exact match wins; otherwise
// the name is matched case-insensitively. The second return value lists the
// other data files found, which callers log for context.
func (d *Discovery) FindDatasetFile(dir, name string) (FileInfo, []FileInfo, error) {
	files, err := d.FindDataFiles(dir)
	if err != nil {
		return FileInfo{}, nil, err
	}

	match := -1
	for i, f := range files {
		if f.Name == name {
			match = i
			break
		}
		if match < 0 && strings.EqualFold(f.Name, name) {
			match = i
		}
	}
	if match < 0 {
		return FileInfo{}, files, apperrors.NewNotFoundError(fmt.Sprintf("dataset file %s in %s", name, d.resolve(dir)))
	}

	others := make([]FileInfo, 0, len(files)-1)
	others = append(others, files[:match]...)
	others = append(others, files[match+1:]...)
	return files[match], others, nil
}

// IsDataFile reports whether the file name has a readable extension
func IsDataFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range DataExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
