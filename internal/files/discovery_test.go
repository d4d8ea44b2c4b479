package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fitcli/internal/errors"
)

func setupDataset(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("Id\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0755))
	return dir
}

func names(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestFindDataFiles(t *testing.T) {
	dir := setupDataset(t,
		"sleepDay_merged.csv",
		"dailyActivity_merged.csv",
		"weightLogInfo_merged.xlsx",
		"README.md",
	)

	files, err := NewDiscovery("").FindDataFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"dailyActivity_merged.csv", "sleepDay_merged.csv", "weightLogInfo_merged.xlsx"}, names(files))
	assert.Equal(t, filepath.Join(dir, "dailyActivity_merged.csv"), files[0].Path)
	assert.Equal(t, int64(3), files[0].Size)
}

func TestFindDataFilesRelative(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "fitabase"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "fitabase", "a.csv"), []byte("x"), 0644))

	files, err := NewDiscovery(base).FindDataFiles("fitabase")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, names(files))
}

func TestFindDataFilesMissingDir(t *testing.T) {
	_, err := NewDiscovery("").FindDataFiles(filepath.Join(t.TempDir(), "absent"))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
}

func TestFindDatasetFile(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		lookup     string
		wantName   string
		wantOthers []string
		wantErr    bool
	}{
		{
			name:       "exact match",
			files:      []string{"dailyActivity_merged.csv", "sleepDay_merged.csv"},
			lookup:     "dailyActivity_merged.csv",
			wantName:   "dailyActivity_merged.csv",
			wantOthers: []string{"sleepDay_merged.csv"},
		},
		{
			name:       "case-insensitive match",
			files:      []string{"DailyActivity_Merged.CSV", "hourlySteps_merged.csv"},
			lookup:     "dailyActivity_merged.csv",
			wantName:   "DailyActivity_Merged.CSV",
			wantOthers: []string{"hourlySteps_merged.csv"},
		},
		{
			name:       "not found",
			files:      []string{"sleepDay_merged.csv"},
			lookup:     "dailyActivity_merged.csv",
			wantOthers: []string{"sleepDay_merged.csv"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupDataset(t, tt.files...)
			found, others, err := NewDiscovery("").FindDatasetFile(dir, tt.lookup)
			if tt.wantErr {
				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
				assert.Equal(t, tt.wantOthers, names(others))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, found.Name)
			assert.Equal(t, tt.wantOthers, names(others))
		})
	}
}

func TestIsDataFile(t *testing.T) {
	assert.True(t, IsDataFile("a.csv"))
	assert.True(t, IsDataFile("B.XLSX"))
	assert.True(t, IsDataFile("c.xlsm"))
	assert.False(t, IsDataFile("d.xls"))
	assert.False(t, IsDataFile("notes.txt"))
	assert.False(t, IsDataFile("csv"))
}
