package r2sync

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTestFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	mkdirErr := os.MkdirAll(filepath.Dir(path), os.ModePerm)
	assert.Nil(t, mkdirErr)
	writeErr := os.WriteFile(path, make([]byte, size), 0o644)
	assert.Nil(t, writeErr)
	return path
}

func TestScanTreeFlatFolder(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, tempDir, "a.txt", 3)
	writeTestFile(t, tempDir, "b.png", 5)

	localFiles, scanErr := scanTree(tempDir, "")

	assert.Nil(t, scanErr)
	assert.Len(t, localFiles, 2)
	keyBase := filepath.Base(tempDir)
	keys := make([]string, 0)
	for _, localFile := range localFiles {
		keys = append(keys, localFile.Key)
	}
	assert.Contains(t, keys, keyBase+"/a.txt")
	assert.Contains(t, keys, keyBase+"/b.png")
}

func TestScanTreeNestedFoldersUseForwardSlashes(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, tempDir, filepath.Join("one", "two", "deep.bin"), 9)

	localFiles, scanErr := scanTree(tempDir, "")

	assert.Nil(t, scanErr)
	assert.Len(t, localFiles, 1)
	assert.Equal(t, filepath.Base(tempDir)+"/one/two/deep.bin", localFiles[0].Key)
	assert.Equal(t, int64(9), localFiles[0].Size)
}

func TestScanTreePrefixPrependsKey(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, tempDir, "a.txt", 1)

	localFiles, scanErr := scanTree(tempDir, "site/assets/")

	assert.Nil(t, scanErr)
	assert.Len(t, localFiles, 1)
	expected := fmt.Sprintf("site/assets/%s/a.txt", filepath.Base(tempDir))
	assert.Equal(t, expected, localFiles[0].Key)
}

func TestScanTreeSkipsDirectoryEntries(t *testing.T) {
	tempDir := t.TempDir()
	mkdirErr := os.MkdirAll(filepath.Join(tempDir, "empty", "nested"), os.ModePerm)
	assert.Nil(t, mkdirErr)
	writeTestFile(t, tempDir, "only-file", 1)

	localFiles, scanErr := scanTree(tempDir, "")

	assert.Nil(t, scanErr)
	assert.Len(t, localFiles, 1)
	assert.Equal(t, filepath.Base(tempDir)+"/only-file", localFiles[0].Key)
}

func TestScanTreeMissingFolderAbortsScan(t *testing.T) {
	localFiles, scanErr := scanTree("/definitely/not/a/real/folder", "")

	assert.Nil(t, localFiles)
	assert.ErrorIs(t, scanErr, ErrLocalScan)
}
