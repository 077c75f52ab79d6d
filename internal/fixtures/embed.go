// Package fixtures ships a small corpus of boards used by this
// package's tests and by the "fixtures" CLI subcommand. A prior storage
// adapter in this position read and wrote mutable puzzle state from a
// directory on disk; this package instead exposes a fixed, read-only
// corpus baked into the binary via go:embed, since there is no
// puzzle-editing flow in this domain for a writable store to back.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	"flowlink.dev/solver/internal/domain"
)

//go:embed testdata/*.json
var corpus embed.FS

// Fixture is one named board together with the outcome its test is
// expected to assert.
type Fixture struct {
	Name  string
	Board domain.Board
	// Expect is one of "solvable", "nosolution", or "timeout_allowed".
	Expect string
}

type rawFixture struct {
	Name   string  `json:"name"`
	Board  [][]int `json:"board"`
	Expect string  `json:"expect"`
}

// LoadAll parses every embedded fixture, sorted by name for a
// deterministic iteration order across test runs.
func LoadAll() ([]Fixture, error) {
	entries, err := fs.ReadDir(corpus, "testdata")
	if err != nil {
		return nil, fmt.Errorf("fixtures: reading testdata: %w", err)
	}

	out := make([]Fixture, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(corpus, "testdata/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("fixtures: reading %s: %w", entry.Name(), err)
		}
		var raw rawFixture
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("fixtures: parsing %s: %w", entry.Name(), err)
		}
		out = append(out, Fixture{
			Name:   raw.Name,
			Board:  domain.NewBoard(raw.Board),
			Expect: raw.Expect,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Load returns the single fixture named name, or an error if the corpus
// carries no fixture under that name.
func Load(name string) (Fixture, error) {
	all, err := LoadAll()
	if err != nil {
		return Fixture{}, err
	}
	for _, f := range all {
		if f.Name == name {
			return f, nil
		}
	}
	return Fixture{}, fmt.Errorf("fixtures: no fixture named %q", name)
}
