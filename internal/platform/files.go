package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists and is not a directory: %s", dirPath)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReplaceExtension swaps the extension of the last path element for ext.
// A leading dot of a hidden file is not treated as an extension, so
// ".comments" becomes ".comments.csv".
func ReplaceExtension(path, ext string) string {
	base := filepath.Base(path)
	oldExt := filepath.Ext(base)
	if oldExt == base || oldExt == "." {
		oldExt = ""
	}
	return strings.TrimSuffix(path, oldExt) + ext
}

// AbsPath returns the absolute form of path, or path itself when it cannot be resolved
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
