package neptune

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"neptune/internal/plot"
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

func populationRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSnapshot(t, filepath.Join(root, "island_0", "population", "pop_0.json.gz"),
		`[{"generation":1,"fitness":{"cached_scalar":0.5}},{"generation":1,"fitness":{"cached_scalar":0.7}}]`)
	writeSnapshot(t, filepath.Join(root, "island_1", "population", "pop_0.json.gz"),
		`[{"generation":2,"fitness":{"cached_scalar":0.9}},{"generation":2}]`)
	writeSnapshot(t, filepath.Join(root, "island_0", "champions", "champion_4.json.gz"),
		`[{"name":"keeper","generation":4,"fitness":{"cached_scalar":0.95}}]`)
	return root
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	base := t.TempDir()
	client, err := New(Options{
		StoreKind: "memory",
		PlotsDir:  filepath.Join(base, "plots"),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientTableAndCatalog(t *testing.T) {
	ctx := context.Background()
	root := populationRoot(t)
	client := newTestClient(t)

	table, err := client.Table(ctx, TableRequest{
		Population: root,
		Island:     -1,
		Col1:       "generation",
		Col2:       "fitness",
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", table.Len())
	}
	if table.Col1.Values[0].Float64 != 1 || table.Col1.Values[2].Float64 != 2 {
		t.Fatalf("islands out of order: %+v", table.Col1.Values)
	}
	if table.Col2.Values[3].Valid {
		t.Fatal("expected absent fitness in last row")
	}

	record, err := client.SaveTable(ctx, "first-run", root, table)
	if err != nil {
		t.Fatalf("save table: %v", err)
	}
	if record.ID == "" || record.CreatedAtUTC == "" {
		t.Fatalf("incomplete record: %+v", record)
	}

	loaded, ok, err := client.GetTable(ctx, record.ID)
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if !ok {
		t.Fatal("expected cataloged table")
	}
	if loaded.Name != "first-run" || loaded.Table.Len() != 4 {
		t.Fatalf("unexpected record: %+v", loaded)
	}

	records, err := client.Tables(ctx)
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	if len(records) != 1 || records[0].ID != record.ID {
		t.Fatalf("unexpected listing: %+v", records)
	}
}

func TestClientTableRequestValidation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Table(ctx, TableRequest{Col1: "generation", Col2: "fitness"}); err == nil {
		t.Fatal("expected error without a source")
	}
	if _, err := client.Table(ctx, TableRequest{Dir: "a", Population: "b", Col1: "generation", Col2: "fitness"}); err == nil {
		t.Fatal("expected error for both sources")
	}
	if _, err := client.Table(ctx, TableRequest{Dir: "a", Col1: "generation", Col2: "no_such_column"}); err == nil {
		t.Fatal("expected error for unknown extractor")
	}
	if _, err := client.Table(ctx, TableRequest{Dir: "a", Col1: "generation"}); err == nil {
		t.Fatal("expected error for missing column name")
	}
}

func TestClientTableSingleIsland(t *testing.T) {
	ctx := context.Background()
	root := populationRoot(t)
	client := newTestClient(t)

	table, err := client.Table(ctx, TableRequest{
		Population: root,
		Island:     1,
		Col1:       "generation",
		Col2:       "fitness",
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if table.Len() != 2 || table.Col1.Values[0].Float64 != 2 {
		t.Fatalf("unexpected island table: %+v", table)
	}
}

func TestClientHexbinDefaultsIntoPlotsDir(t *testing.T) {
	ctx := context.Background()
	root := populationRoot(t)
	client := newTestClient(t)

	outPath, err := client.Hexbin(ctx, TableRequest{
		Population: root,
		Island:     -1,
		Col1:       "generation",
		Col2:       "fitness",
	}, plot.HexbinConfig{XBins: 4, YBins: 4}, "")
	if err != nil {
		t.Fatalf("hexbin: %v", err)
	}
	if filepath.Base(outPath) != "fitness_by_generation_hexbin.png" {
		t.Fatalf("unexpected output name: %s", outPath)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("stat output: %v", err)
	}
}

func TestClientPleasuresExplicitPath(t *testing.T) {
	ctx := context.Background()
	root := populationRoot(t)
	client := newTestClient(t)

	out := filepath.Join(t.TempDir(), "figures", "ridges.png")
	outPath, err := client.Pleasures(ctx, TableRequest{
		Population: root,
		Island:     -1,
		Col1:       "generation",
		Col2:       "fitness",
	}, plot.PleasuresConfig{Bins: 8}, out)
	if err != nil {
		t.Fatalf("pleasures: %v", err)
	}
	if outPath != out {
		t.Fatalf("explicit path was rewritten: %s", outPath)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("stat output: %v", err)
	}
}

func TestClientChampions(t *testing.T) {
	ctx := context.Background()
	root := populationRoot(t)
	client := newTestClient(t)

	infos, err := client.Champions(ctx, root, -1)
	if err != nil {
		t.Fatalf("champions: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 champion file, got %d", len(infos))
	}
	info := infos[0]
	if info.Name != "keeper" || info.Creatures != 1 {
		t.Fatalf("unexpected champion: %+v", info)
	}
	if !info.Generation.Valid || info.Generation.Float64 != 4 {
		t.Fatalf("unexpected champion generation: %+v", info.Generation)
	}
	if !info.Fitness.Valid || info.Fitness.Float64 != 0.95 {
		t.Fatalf("unexpected champion fitness: %+v", info.Fitness)
	}
}

func TestClientSummary(t *testing.T) {
	ctx := context.Background()
	root := populationRoot(t)
	client := newTestClient(t)

	table, err := client.Table(ctx, TableRequest{
		Population: root,
		Island:     -1,
		Col1:       "generation",
		Col2:       "fitness",
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	summaries, err := client.Summary(table)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 column summaries, got %d", len(summaries))
	}
	if summaries[0].Name != "generation" || summaries[0].Min != 1 || summaries[0].Max != 2 {
		t.Fatalf("unexpected generation summary: %+v", summaries[0])
	}
	if summaries[1].Valid != 3 || summaries[1].Absent != 1 {
		t.Fatalf("unexpected fitness summary: %+v", summaries[1])
	}
}
