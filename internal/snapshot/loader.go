// Package snapshot reads gzip-compressed JSON population dumps and knows the
// on-disk layout of a run: <root>/island_<N>/population holds snapshot files
// and <root>/island_<N>/champions holds champion*.json.gz files.
package snapshot

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"neptune/internal/model"
)

// Logger receives diagnostics from the lenient loading path. Tests may
// swap it out.
var Logger = log.New(os.Stderr, "", log.LstdFlags)

// LoadPopulation reads one gzip-compressed JSON array of creatures.
func LoadPopulation(path string) ([]model.Creature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gunzip %s: %w", path, err)
	}
	defer zr.Close()

	var population []model.Creature
	if err := json.NewDecoder(zr).Decode(&population); err != nil {
		return nil, fmt.Errorf("decode population %s: %w", path, err)
	}
	return population, nil
}

// LoadPopulationLenient is the best-effort variant: any read or parse
// failure is logged and an empty population returned, so a missing or
// corrupt snapshot looks exactly like an empty one.
func LoadPopulationLenient(path string) []model.Creature {
	population, err := LoadPopulation(path)
	if err != nil {
		Logger.Printf("failed to read population from %s: %v", path, err)
		return nil
	}
	return population
}

// LoadSoup reads an uncompressed JSON array of word/count pairs.
func LoadSoup(path string) ([]model.SoupEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var soup []model.SoupEntry
	if err := json.NewDecoder(f).Decode(&soup); err != nil {
		return nil, fmt.Errorf("decode soup %s: %w", path, err)
	}
	return soup, nil
}
