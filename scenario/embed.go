package scenario

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the on-disk directory checked before the embedded scenarios, so
// edited files win over the built-in copies.
var Dir = "scenario"

//go:embed *.yaml
var ScenariosFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns the named scenario file, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanScenarioPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenariosFS.ReadFile(clean)
}

// LoadScript returns the named track script, preferring the copy on disk.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanScenarioPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := cleanScenarioPath(path)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
