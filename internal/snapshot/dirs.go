package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"neptune/internal/model"
)

// Files lists the regular files directly inside dir, in lexical order.
// Subdirectories are not descended into.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// PopulationDirs expands <root>/island_<N>/population. A negative island
// selects every island; island directories come back in numeric order.
func PopulationDirs(root string, island int) ([]string, error) {
	pattern := filepath.Join(root, "island_*", "population")
	if island >= 0 {
		pattern = filepath.Join(root, "island_"+strconv.Itoa(island), "population")
	}
	dirs, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sortByIsland(dirs)
	return dirs, nil
}

// ChampionFiles expands <root>/island_<N>/champions/champion*.json.gz.
func ChampionFiles(root string, island int) ([]string, error) {
	islandPart := "island_*"
	if island >= 0 {
		islandPart = "island_" + strconv.Itoa(island)
	}
	pattern := filepath.Join(root, islandPart, "champions", "champion*.json.gz")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadChampions loads every champion snapshot under root, one population
// per champion file, in file order. Unreadable files load as empty.
func LoadChampions(root string, island int) ([][]model.Creature, error) {
	files, err := ChampionFiles(root, island)
	if err != nil {
		return nil, err
	}
	champions := make([][]model.Creature, 0, len(files))
	for _, file := range files {
		champions = append(champions, LoadPopulationLenient(file))
	}
	return champions, nil
}

// sortByIsland orders island_<N> paths numerically, falling back to the
// lexical order glob already produced when a path does not parse.
func sortByIsland(dirs []string) {
	sort.SliceStable(dirs, func(i, j int) bool {
		ni, iok := islandNumber(dirs[i])
		nj, jok := islandNumber(dirs[j])
		if iok && jok {
			return ni < nj
		}
		return dirs[i] < dirs[j]
	})
}

func islandNumber(dir string) (int, bool) {
	island := filepath.Base(filepath.Dir(dir))
	var n int
	if _, err := fmt.Sscanf(island, "island_%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
