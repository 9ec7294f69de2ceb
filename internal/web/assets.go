package web

import (
	"path/filepath"
	"strings"
)

const assetCacheControl = "public, max-age=3600"

// assetCandidates returns the files that may hold asset name under
// StaticDir/subdir: the bare name, then name plus each extension. ok is
// false when name would escape the directory.
func (s *Server) assetCandidates(subdir, name string, extensions []string) ([]string, bool) {
	safe := filepath.Clean(name)
	if safe == "" || safe == "." || strings.Contains(safe, "..") ||
		filepath.IsAbs(safe) || strings.ContainsAny(safe, `/\`) {
		return nil, false
	}

	baseDir := filepath.Join(s.staticDir(), subdir)
	resolved := filepath.Join(baseDir, safe)
	rel, err := filepath.Rel(baseDir, resolved)
	if err != nil || strings.Contains(rel, "..") {
		return nil, false
	}

	candidates := []string{resolved}
	for _, ext := range extensions {
		candidates = append(candidates, resolved+ext)
	}
	return candidates, true
}

func (s *Server) staticDir() string {
	if s.StaticDir == "" {
		return "static"
	}
	return s.StaticDir
}
