package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// AppName names the per-user config and data directories.
const AppName = "blockserve"

// CorpusCandidates lists where a corpus path is looked up, in order:
// as given (absolute or relative to the working directory), next to the
// executable, then under the config directory.
func CorpusCandidates(path, configDir string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	candidates := []string{path}
	if execDir, err := GetExecutableDir(); err == nil {
		candidates = append(candidates, filepath.Join(execDir, path))
	}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, path))
	}
	return candidates
}

// ResolveCorpusPath returns the first existing candidate for path. When
// none exists the path is returned unchanged so the caller reports it.
func ResolveCorpusPath(path, configDir string) string {
	for _, c := range CorpusCandidates(path, configDir) {
		if _, err := os.Stat(c); err == nil {
			log.Debugf("Resolved corpus %s to %s", path, c)
			return c
		}
		log.Debugf("Corpus candidate not found: %s", c)
	}
	return path
}
