package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one converted track in the output manifest.
type ManifestEntry struct {
	Track   string   `json:"track"`
	Outputs []string `json:"outputs"`
}

// WriteManifest writes manifest.json listing the artifacts of all
// successful conversions, with paths relative to the manifest location.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)

	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		outs := make([]string, len(r.Outputs))
		for i, o := range r.Outputs {
			if rel, err := filepath.Rel(dir, o); err == nil {
				outs[i] = rel
			} else {
				outs[i] = o
			}
		}
		entries = append(entries, ManifestEntry{Track: r.Track, Outputs: outs})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
