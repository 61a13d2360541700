package main

import (
	"os"
	"path/filepath"
	"strings"
)

// defaultSearchPath implements §6's POST4_PATH contract: a colon-separated
// search path for the core file and includes, defaulting to the current
// directory plus the usual install prefixes.
func defaultSearchPath() []string {
	if p := os.Getenv("POST4_PATH"); p != "" {
		return strings.Split(p, ":")
	}
	return []string{".", "/usr/pkg/lib/post4", "/usr/local/lib/post4", "/usr/lib/post4"}
}

// openOnPath resolves name against path, trying name itself first (so an
// absolute or explicitly relative path always wins), then each path entry
// joined with name.
func openOnPath(name string, path []string) (*os.File, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") {
		return os.Open(name)
	}
	if f, err := os.Open(name); err == nil {
		return f, nil
	}
	var firstErr error
	for _, dir := range path {
		f, err := os.Open(filepath.Join(dir, name))
		if err == nil {
			return f, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = os.ErrNotExist
	}
	return nil, firstErr
}
