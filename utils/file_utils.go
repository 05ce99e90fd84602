package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, os.ModePerm)
}

// FindFiles finds files matching the given pattern in a directory
func FindFiles(dir, pattern string) ([]string, error) {
	var files []string

	// Split pattern by comma for multiple extensions
	patterns := strings.Split(pattern, ",")

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			// Check if file matches any of the patterns
			for _, p := range patterns {
				p = strings.TrimSpace(p)
				matched, err := filepath.Match(p, info.Name())
				if err != nil {
					return err
				}
				if matched {
					files = append(files, path)
					break
				}
			}
		}

		return nil
	})

	return files, err
}

// IsSubpath ensures child is within root, preventing path traversal
func IsSubpath(root, child string) bool {
	absRoot, _ := filepath.Abs(root)
	absChild, _ := filepath.Abs(child)
	rel, err := filepath.Rel(absRoot, absChild)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
