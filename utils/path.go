package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// PathExpand returns p as an absolute path, resolving a leading ~ to the
// home directory and relative paths against the working directory.
func PathExpand(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	if !filepath.IsAbs(p) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		p = filepath.Join(wd, p)
	}
	return filepath.Clean(p), nil
}
