package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"neptune/internal/dataextract"
	"neptune/internal/model"
	"neptune/internal/plot"
	"neptune/internal/storage"
	neptuneapi "neptune/pkg/neptune"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "table":
		return runTable(ctx, args[1:])
	case "tables":
		return runTables(ctx, args[1:])
	case "show-table":
		return runShowTable(ctx, args[1:])
	case "hexbin":
		return runHexbin(ctx, args[1:])
	case "pleasures":
		return runPleasures(ctx, args[1:])
	case "champions":
		return runChampions(ctx, args[1:])
	case "soup":
		return runSoup(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runTable(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	dir := fs.String("dir", "", "population snapshot directory")
	population := fs.String("population", "", "population root containing island_<N>/population dirs")
	island := fs.Int("island", -1, "island number (-1 selects all islands)")
	col1 := fs.String("col1", "generation", "first column extractor: fitness|generation|mem_write_ratio|mem_ratio_written|code_coverage")
	col2 := fs.String("col2", "fitness", "second column extractor")
	outPath := fs.String("out", "", "optional table JSON output path")
	csvPath := fs.String("csv-out", "", "optional table CSV output path")
	showStats := fs.Bool("stats", false, "print per-column min/mean/max stats")
	save := fs.Bool("save", false, "save the table to the catalog store")
	name := fs.String("name", "", "catalog name for --save (defaults to <col2>_by_<col1>)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neptune.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := neptuneapi.New(neptuneapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	table, err := client.Table(ctx, neptuneapi.TableRequest{
		Dir:        *dir,
		Population: *population,
		Island:     *island,
		Col1:       *col1,
		Col2:       *col2,
	})
	if err != nil {
		return err
	}

	fmt.Printf("table col1=%s col2=%s rows=%d\n", table.Col1.Name, table.Col2.Name, table.Len())
	if *showStats {
		if err := printColumnStats(client, table); err != nil {
			return err
		}
	}
	if *outPath != "" {
		if err := dataextract.WriteTableFile(*outPath, table); err != nil {
			return err
		}
		fmt.Printf("table_json out=%s\n", *outPath)
	}
	if *csvPath != "" {
		if err := dataextract.WriteTableCSV(*csvPath, table); err != nil {
			return err
		}
		fmt.Printf("table_csv out=%s\n", *csvPath)
	}
	if *save {
		catalogName := *name
		if catalogName == "" {
			catalogName = fmt.Sprintf("%s_by_%s", table.Col2.Name, table.Col1.Name)
		}
		record, err := client.SaveTable(ctx, catalogName, *population, table)
		if err != nil {
			return err
		}
		fmt.Printf("table_saved id=%s name=%s rows=%d\n", record.ID, record.Name, record.Table.Len())
	}
	return nil
}

func runTables(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max catalog entries to list")
	jsonOut := fs.Bool("json", false, "emit catalog entries as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neptune.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := neptuneapi.New(neptuneapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	records, err := client.Tables(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no tables found")
		return nil
	}
	if len(records) > *limit {
		records = records[:*limit]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, record := range records {
		fmt.Printf("id=%s created_at=%s name=%s population=%s col1=%s col2=%s rows=%d\n",
			record.ID,
			record.CreatedAtUTC,
			record.Name,
			record.Population,
			record.Table.Col1.Name,
			record.Table.Col2.Name,
			record.Table.Len(),
		)
	}
	return nil
}

func runShowTable(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show-table", flag.ContinueOnError)
	id := fs.String("id", "", "catalog entry id")
	limit := fs.Int("limit", 10, "max rows to print (<=0 for all)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neptune.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("show-table requires --id")
	}

	client, err := neptuneapi.New(neptuneapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, ok, err := client.GetTable(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no table with id %s", *id)
	}

	table := record.Table
	fmt.Printf("table id=%s name=%s population=%s col1=%s col2=%s rows=%d\n",
		record.ID, record.Name, record.Population, table.Col1.Name, table.Col2.Name, table.Len())
	rows := table.Len()
	if *limit > 0 && *limit < rows {
		rows = *limit
	}
	for i := 0; i < rows; i++ {
		fmt.Printf("row index=%d %s=%s %s=%s\n",
			i,
			table.Col1.Name, displayScalar(table.Col1.Values[i].Float64, table.Col1.Values[i].Valid),
			table.Col2.Name, displayScalar(table.Col2.Values[i].Float64, table.Col2.Values[i].Valid),
		)
	}
	return nil
}

func runHexbin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hexbin", flag.ContinueOnError)
	dir := fs.String("dir", "", "population snapshot directory")
	population := fs.String("population", "", "population root containing island_<N>/population dirs")
	island := fs.Int("island", -1, "island number (-1 selects all islands)")
	xCol := fs.String("x", "generation", "x-axis extractor")
	yCol := fs.String("y", "fitness", "y-axis extractor")
	xBins := fs.Int("x-bins", 40, "x-axis bin count")
	yBins := fs.Int("y-bins", 40, "y-axis bin count")
	title := fs.String("title", "", "plot title (defaults to <y> by <x>)")
	outName := fs.String("out", "", "output PNG path (defaults into the plots dir)")
	plotsDir := fs.String("plots-dir", "plots", "directory for generated plots")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := neptuneapi.New(neptuneapi.Options{PlotsDir: *plotsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	outPath, err := client.Hexbin(ctx, neptuneapi.TableRequest{
		Dir:        *dir,
		Population: *population,
		Island:     *island,
		Col1:       *xCol,
		Col2:       *yCol,
	}, plot.HexbinConfig{XBins: *xBins, YBins: *yBins, Title: *title}, *outName)
	if err != nil {
		return err
	}
	fmt.Printf("hexbin x=%s y=%s out=%s\n", *xCol, *yCol, outPath)
	return nil
}

func runPleasures(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pleasures", flag.ContinueOnError)
	dir := fs.String("dir", "", "population snapshot directory")
	population := fs.String("population", "", "population root containing island_<N>/population dirs")
	island := fs.Int("island", -1, "island number (-1 selects all islands)")
	byCol := fs.String("by", "generation", "grouping extractor (one ridge per value)")
	column := fs.String("column", "fitness", "binned extractor")
	bins := fs.Int("bins", 40, "histogram bin count per ridge")
	overlap := fs.Float64("overlap", 0.9, "vertical ridge overlap in (0,1)")
	title := fs.String("title", "", "plot title (defaults to <column> by <by>)")
	outName := fs.String("out", "", "output PNG path (defaults into the plots dir)")
	plotsDir := fs.String("plots-dir", "plots", "directory for generated plots")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := neptuneapi.New(neptuneapi.Options{PlotsDir: *plotsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	outPath, err := client.Pleasures(ctx, neptuneapi.TableRequest{
		Dir:        *dir,
		Population: *population,
		Island:     *island,
		Col1:       *byCol,
		Col2:       *column,
	}, plot.PleasuresConfig{Bins: *bins, Overlap: *overlap, Title: *title}, *outName)
	if err != nil {
		return err
	}
	fmt.Printf("pleasures by=%s column=%s out=%s\n", *byCol, *column, outPath)
	return nil
}

func runChampions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("champions", flag.ContinueOnError)
	population := fs.String("population", "", "population root containing island_<N>/champions dirs")
	island := fs.Int("island", -1, "island number (-1 selects all islands)")
	jsonOut := fs.Bool("json", false, "emit champion list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *population == "" {
		return errors.New("champions requires --population")
	}

	client, err := neptuneapi.New(neptuneapi.Options{})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	champions, err := client.Champions(ctx, *population, *island)
	if err != nil {
		return err
	}
	if len(champions) == 0 {
		fmt.Println("no champions found")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(champions)
	}

	for _, champion := range champions {
		fmt.Printf("champion path=%s creatures=%d name=%s generation=%s fitness=%s\n",
			champion.Path,
			champion.Creatures,
			champion.Name,
			displayScalar(champion.Generation.Float64, champion.Generation.Valid),
			displayScalar(champion.Fitness.Float64, champion.Fitness.Valid),
		)
	}
	return nil
}

func runSoup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("soup", flag.ContinueOnError)
	path := fs.String("path", "", "soup JSON path")
	limit := fs.Int("limit", 20, "max entries to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit soup entries as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("soup requires --path")
	}

	client, err := neptuneapi.New(neptuneapi.Options{})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	entries, err := client.Soup(ctx, *path)
	if err != nil {
		return err
	}
	if *limit > 0 && len(entries) > *limit {
		entries = entries[:*limit]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, entry := range entries {
		fmt.Printf("word=%s count=%d\n", entry.Word, entry.Count)
	}
	return nil
}

func printColumnStats(client *neptuneapi.Client, table model.Table) error {
	summaries, err := client.Summary(table)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("column_stats name=%s min=%g mean=%g max=%g valid=%d absent=%d\n",
			s.Name, s.Min, s.Mean, s.Max, s.Valid, s.Absent)
	}
	return nil
}

func displayScalar(v float64, valid bool) string {
	if !valid {
		return "n/a"
	}
	return fmt.Sprintf("%.6f", v)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: neptunectl <table|tables|show-table|hexbin|pleasures|champions|soup> [flags]", msg)
}
