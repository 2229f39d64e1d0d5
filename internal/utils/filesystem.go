package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path with mode 0600, creating parent directories.
// An existing file is only replaced when overwrite is true.
func WriteFile(path string, data []byte, overwrite bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists (hint: use --force to overwrite)", path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
