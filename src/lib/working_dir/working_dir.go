package working_dir

import (
	"fmt"
	"os"
	"path/filepath"
	"stem-separator-workers/src/lib/cerr"

	"github.com/apex/log"
)

type WorkingDir struct {
	root string
}

func NewWorkingDir(root string) (WorkingDir, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return WorkingDir{}, cerr.Field("root", root).
			Wrap(err).Error("Failed to generate absolute path for working directory")
	}

	if err := os.MkdirAll(filepath.Join(absRoot, "tmp"), os.ModePerm); err != nil {
		return WorkingDir{}, cerr.Field("root", absRoot).
			Wrap(err).Error("Failed to create working directory")
	}

	return WorkingDir{
		root: absRoot,
	}, nil
}

func (w WorkingDir) Root() string {
	return w.root
}

func (w WorkingDir) TempDir() string {
	return filepath.Join(w.root, "tmp")
}

// MakeTempDir creates a uniquely named directory under TempDir.
// The returned func removes it and everything in it.
func (w WorkingDir) MakeTempDir(prefix string) (string, func(), error) {
	tempDir, err := os.MkdirTemp(w.TempDir(), fmt.Sprintf("%s-*", prefix))
	if err != nil {
		return "", nil, cerr.Field("temp_dir", w.TempDir()).
			Wrap(err).Error("Failed to create a temporary directory")
	}

	removeFn := func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.WithField("temp_dir", tempDir).Error("Failed to remove temp dir")
		}
	}

	return tempDir, removeFn, nil
}
