package loader

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/keshon/cmdhandler/pkg/cmd"
)

type decoder func(path string, src []byte) (*cmd.Command, error)

var decoders = map[string]decoder{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".go":   decodeScript,
}

// Extensions lists the recognized command file extensions.
func Extensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// CanonicalName strips a recognized extension from file exactly once
// ("ping.yaml" -> "ping", "ping.go.go" -> "ping.go"). It reports false for
// files with no recognized extension.
func CanonicalName(file string) (string, bool) {
	ext := filepath.Ext(file)
	if _, ok := decoders[ext]; !ok {
		return "", false
	}
	name := strings.TrimSuffix(file, ext)
	if name == "" {
		return "", false
	}
	return name, true
}
