package dataextract

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"neptune/internal/model"
	"neptune/internal/snapshot"
)

// BuildTable loads one snapshot file leniently and applies both extractors
// to every creature, in file order. An unreadable file yields an empty
// table with the requested column names.
func BuildTable(path, col1, col2 string, f1, f2 ExtractFunc) (model.Table, error) {
	table := model.NewTable(col1, col2)
	for i, creature := range snapshot.LoadPopulationLenient(path) {
		v1, err := f1(creature)
		if err != nil {
			return model.Table{}, fmt.Errorf("%s creature %d column %s: %w", path, i, col1, err)
		}
		v2, err := f2(creature)
		if err != nil {
			return model.Table{}, fmt.Errorf("%s creature %d column %s: %w", path, i, col2, err)
		}
		table.AppendRow(v1, v2)
	}
	return table, nil
}

// TableForDir assembles one table per file directly inside dir and
// concatenates them in file order.
func TableForDir(dir, col1, col2 string, f1, f2 ExtractFunc) (model.Table, error) {
	files, err := snapshot.Files(dir)
	if err != nil {
		return model.Table{}, err
	}

	table := model.NewTable(col1, col2)
	for _, file := range files {
		part, err := BuildTable(file, col1, col2, f1, f2)
		if err != nil {
			return model.Table{}, err
		}
		if err := table.Append(part); err != nil {
			return model.Table{}, err
		}
	}
	return table, nil
}

// TableForDirs concatenates per-directory tables into one, preserving
// directory order.
func TableForDirs(dirs []string, col1, col2 string, f1, f2 ExtractFunc) (model.Table, error) {
	table := model.NewTable(col1, col2)
	for _, dir := range dirs {
		part, err := TableForDir(dir, col1, col2, f1, f2)
		if err != nil {
			return model.Table{}, err
		}
		if err := table.Append(part); err != nil {
			return model.Table{}, err
		}
	}
	return table, nil
}

// TableForPopulation assembles one global table over every island
// population directory under root. A negative island selects all islands.
func TableForPopulation(root string, island int, col1, col2 string, f1, f2 ExtractFunc) (model.Table, error) {
	dirs, err := snapshot.PopulationDirs(root, island)
	if err != nil {
		return model.Table{}, err
	}
	if len(dirs) == 0 {
		return model.Table{}, fmt.Errorf("no population directories under %s", root)
	}
	return TableForDirs(dirs, col1, col2, f1, f2)
}

// WriteTableFile persists a table as indented JSON.
func WriteTableFile(path string, table model.Table) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("table file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func ReadTableFile(path string) (model.Table, error) {
	if strings.TrimSpace(path) == "" {
		return model.Table{}, fmt.Errorf("table file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Table{}, err
	}
	var table model.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return model.Table{}, err
	}
	return table, nil
}

// WriteTableCSV writes the table with a header row; absent values become
// empty cells.
func WriteTableCSV(path string, table model.Table) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("table csv path is required")
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{table.Col1.Name, table.Col2.Name}); err != nil {
		return err
	}
	for i := 0; i < table.Len(); i++ {
		if err := writer.Write([]string{
			formatScalar(table.Col1.Values[i]),
			formatScalar(table.Col2.Values[i]),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatScalar(s model.Scalar) string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Float64, 'f', -1, 64)
}
