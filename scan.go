package r2sync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalFile is one regular file under the source folder. Key is the remote
// key the file maps to: optional prefix, then the source folder's base name,
// then the slash-separated relative path.
type LocalFile struct {
	Path string
	Key  string
	Size int64
}

type scanFunc func(string, string) ([]LocalFile, error)

// TODO: is there some better way to allow for stubbing filesystem interactions for tests?
var concreteScanFunc = scanTree

// scanTree walks the source folder and emits one entry per regular file, in
// walk order. Symlinks are not followed, so the walk always terminates. Any
// traversal error aborts the whole scan: a partial listing would be
// re-uploaded on the next run at best and mask missing files at worst.
func scanTree(sourceFolder, prefix string) ([]LocalFile, error) {
	sourceFolder = filepath.Clean(sourceFolder)
	keyBase := filepath.Base(sourceFolder)
	if prefix != "" {
		keyBase = strings.TrimSuffix(prefix, "/") + "/" + keyBase
	}

	localFiles := make([]LocalFile, 0)
	walkErr := filepath.Walk(sourceFolder, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !f.Mode().IsRegular() {
			return nil
		}
		relPath, relErr := filepath.Rel(sourceFolder, path)
		if relErr != nil {
			return relErr
		}
		localFiles = append(localFiles, LocalFile{
			Path: path,
			Key:  keyBase + "/" + filepath.ToSlash(relPath),
			Size: f.Size(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLocalScan, sourceFolder, walkErr)
	}

	return localFiles, nil
}
