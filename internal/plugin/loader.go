package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/models"
)

// DescriptorExtension is the required suffix for plugin descriptor
// files, per spec §3/§6.
const DescriptorExtension = ".detector.toml"

// LoadDir reads every `*.detector.toml` file in dir (non-recursive,
// lexicographically sorted for deterministic registry insertion order)
// and compiles each into a runtime Detector. Any single invalid
// descriptor makes the whole load fail: plugin load failures are fatal
// to registry construction (spec §4.13/§7), never partial.
func LoadDir(dir string) ([]detector.Detector, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plugin directory %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if hasDescriptorExtension(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	seen := make(map[string]bool, len(names))
	detectors := make([]detector.Detector, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, &models.PluginInvalidError{Path: path, Reason: err.Error()}
		}

		var desc models.PluginDescriptor
		if err := toml.Unmarshal(raw, &desc); err != nil {
			return nil, &models.PluginInvalidError{Path: path, Reason: fmt.Sprintf("toml parse: %v", err)}
		}

		det, err := NewDetector(path, desc)
		if err != nil {
			return nil, err
		}
		if seen[det.ID()] {
			return nil, &models.PluginInvalidError{Path: path, Reason: fmt.Sprintf("duplicate detector id %q", det.ID())}
		}
		seen[det.ID()] = true
		detectors = append(detectors, det)
	}
	return detectors, nil
}

func hasDescriptorExtension(name string) bool {
	if len(name) <= len(DescriptorExtension) {
		return false
	}
	return name[len(name)-len(DescriptorExtension):] == DescriptorExtension
}
