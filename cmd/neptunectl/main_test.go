package main

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSnapshot(t *testing.T, path, payload string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(payload)); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
}

func TestRunMissingCommand(t *testing.T) {
	err := run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected usage error")
	}
	if !strings.Contains(err.Error(), "usage: neptunectl") {
		t.Fatalf("expected usage in error, got: %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: bogus") {
		t.Fatalf("expected unknown command error, got: %v", err)
	}
}

func TestTableCommandWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, filepath.Join(dir, "pop_0.json.gz"),
		`[{"generation":1,"fitness":{"cached_scalar":0.5}},{"generation":2}]`)

	out := filepath.Join(dir, "table.json")
	csvOut := filepath.Join(dir, "table.csv")
	args := []string{
		"table",
		"--dir", dir,
		"--col1", "generation",
		"--col2", "fitness",
		"--out", out,
		"--csv-out", csvOut,
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("table command: %v", err)
	}

	for _, path := range []string{out, csvOut} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected artifact %s: %v", path, err)
		}
	}
}

func TestTableCommandRejectsUnknownColumn(t *testing.T) {
	args := []string{"table", "--dir", t.TempDir(), "--col2", "no_such_column"}
	if err := run(context.Background(), args); err == nil {
		t.Fatal("expected error for unknown column extractor")
	}
}

func TestHexbinCommandWritesPlot(t *testing.T) {
	root := t.TempDir()
	writeSnapshot(t, filepath.Join(root, "island_0", "population", "pop_0.json.gz"),
		`[{"generation":1,"fitness":{"cached_scalar":0.2}},{"generation":2,"fitness":{"cached_scalar":0.8}}]`)

	out := filepath.Join(root, "hexbin.png")
	args := []string{
		"hexbin",
		"--population", root,
		"--x-bins", "4",
		"--y-bins", "4",
		"--out", out,
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("hexbin command: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected plot at %s: %v", out, err)
	}
}

func TestChampionsCommandRequiresPopulation(t *testing.T) {
	if err := run(context.Background(), []string{"champions"}); err == nil {
		t.Fatal("expected error without --population")
	}
}

func TestSoupCommandRequiresPath(t *testing.T) {
	if err := run(context.Background(), []string{"soup"}); err == nil {
		t.Fatal("expected error without --path")
	}
}

func TestShowTableCommandRequiresID(t *testing.T) {
	if err := run(context.Background(), []string{"show-table"}); err == nil {
		t.Fatal("expected error without --id")
	}
}
