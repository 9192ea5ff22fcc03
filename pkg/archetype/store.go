package archetype

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// learnedSubdir is the subdirectory of the rules directory that holds
// persisted learned archetypes, one JSON file per archetype ID.
const learnedSubdir = "learned"

type skippedFile struct {
	path string
	err  error
}

// loadDir reads every *.json rule file in dir and dir/learned. Learned
// files shadow predefined files with the same archetype ID. Malformed files
// are collected and reported to the caller instead of aborting the load.
func loadDir(dir string) (map[string]Rules, []skippedFile) {
	out := make(map[string]Rules)
	var skipped []skippedFile

	// Predefined directory first, learned second so learned entries win.
	for _, d := range []string{dir, filepath.Join(dir, learnedSubdir)} {
		entries, err := os.ReadDir(d)
		if err != nil {
			continue // missing directory is fine
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			path := filepath.Join(d, e.Name())
			rules, err := loadFile(path)
			if err != nil {
				skipped = append(skipped, skippedFile{path: path, err: err})
				continue
			}
			out[rules.ArchetypeID] = rules
		}
	}
	return out, skipped
}

func loadFile(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, err
	}
	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse: %w", err)
	}
	id := rules.ArchetypeID
	if id == "" {
		// Fall back to the file name so hand-dropped files still resolve.
		id = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return rules.normalize(id), nil
}

// saveLearned writes one rules value as dir/learned/<archetype_id>.json.
func saveLearned(dir string, rules Rules) error {
	target := filepath.Join(dir, learnedSubdir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(target, rules.ArchetypeID+".json"), data, 0o644)
}
