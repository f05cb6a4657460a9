// Package neptune is the embedding API for the snapshot analysis toolkit:
// it assembles tables from population dumps, catalogs them in a store, and
// renders figures.
package neptune

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"neptune/internal/dataextract"
	"neptune/internal/model"
	"neptune/internal/plot"
	"neptune/internal/snapshot"
	"neptune/internal/stats"
	"neptune/internal/storage"
)

const (
	defaultDBPath   = "neptune.db"
	defaultPlotsDir = "plots"
)

type Options struct {
	StoreKind string
	DBPath    string
	PlotsDir  string
}

type Client struct {
	store    storage.Store
	plotsDir string
}

// TableRequest names either a single directory or a population root.
// Extractors are referenced by name (fitness, generation, sub-scores).
type TableRequest struct {
	Dir        string
	Population string
	Island     int // negative means every island
	Col1       string
	Col2       string
}

type ChampionInfo struct {
	Path       string       `json:"path"`
	Creatures  int          `json:"creatures"`
	Name       string       `json:"name,omitempty"`
	Generation model.Scalar `json:"generation"`
	Fitness    model.Scalar `json:"fitness"`
}

func New(opts Options) (*Client, error) {
	kind := opts.StoreKind
	if kind == "" {
		kind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	plotsDir := opts.PlotsDir
	if plotsDir == "" {
		plotsDir = defaultPlotsDir
	}

	store, err := storage.NewStore(kind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(context.Background()); err != nil {
		return nil, err
	}

	return &Client{store: store, plotsDir: plotsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Table assembles the two-column table the request describes.
func (c *Client) Table(_ context.Context, req TableRequest) (model.Table, error) {
	f1, f2, err := extractors(req)
	if err != nil {
		return model.Table{}, err
	}
	switch {
	case req.Dir != "" && req.Population != "":
		return model.Table{}, errors.New("use either a directory or a population root, not both")
	case req.Dir != "":
		return dataextract.TableForDir(req.Dir, req.Col1, req.Col2, f1, f2)
	case req.Population != "":
		return dataextract.TableForPopulation(req.Population, req.Island, req.Col1, req.Col2, f1, f2)
	default:
		return model.Table{}, errors.New("a directory or population root is required")
	}
}

// SaveTable catalogs a table under a fresh id and returns the record.
func (c *Client) SaveTable(ctx context.Context, name, population string, table model.Table) (model.TableRecord, error) {
	record := model.TableRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:           uuid.NewString(),
		Name:         name,
		Population:   population,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Table:        table,
	}
	if err := c.store.SaveTable(ctx, record); err != nil {
		return model.TableRecord{}, err
	}
	return record, nil
}

func (c *Client) Tables(ctx context.Context) ([]model.TableRecord, error) {
	return c.store.ListTables(ctx)
}

func (c *Client) GetTable(ctx context.Context, id string) (model.TableRecord, bool, error) {
	return c.store.GetTable(ctx, id)
}

// Hexbin assembles the requested table and renders its joint density.
// The output lands under the client's plots directory unless outName is an
// explicit path.
func (c *Client) Hexbin(ctx context.Context, req TableRequest, cfg plot.HexbinConfig, outName string) (string, error) {
	table, err := c.Table(ctx, req)
	if err != nil {
		return "", err
	}
	outPath, err := c.plotPath(outName, fmt.Sprintf("%s_by_%s_hexbin.png", req.Col2, req.Col1))
	if err != nil {
		return "", err
	}
	if err := plot.Hexbin(table, cfg, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// Pleasures assembles the requested table and renders the ridgeline figure.
func (c *Client) Pleasures(ctx context.Context, req TableRequest, cfg plot.PleasuresConfig, outName string) (string, error) {
	table, err := c.Table(ctx, req)
	if err != nil {
		return "", err
	}
	outPath, err := c.plotPath(outName, fmt.Sprintf("%s_by_%s_pleasures.png", req.Col2, req.Col1))
	if err != nil {
		return "", err
	}
	if err := plot.Pleasures(table, cfg, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// Champions summarizes every champion snapshot under a population root.
func (c *Client) Champions(_ context.Context, population string, island int) ([]ChampionInfo, error) {
	files, err := snapshot.ChampionFiles(population, island)
	if err != nil {
		return nil, err
	}

	infos := make([]ChampionInfo, 0, len(files))
	for _, file := range files {
		creatures := snapshot.LoadPopulationLenient(file)
		info := ChampionInfo{Path: file, Creatures: len(creatures)}
		if len(creatures) > 0 {
			champion := creatures[0]
			info.Name = champion.Name
			info.Generation, _ = dataextract.GenerationOf(champion)
			info.Fitness, _ = dataextract.FitnessOf(champion)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (c *Client) Soup(_ context.Context, path string) ([]model.SoupEntry, error) {
	return snapshot.LoadSoup(path)
}

// Summary reports per-column stats for a table.
func (c *Client) Summary(table model.Table) ([]stats.ColumnStats, error) {
	col1, err := stats.Summarize(table.Col1)
	if err != nil {
		return nil, err
	}
	col2, err := stats.Summarize(table.Col2)
	if err != nil {
		return nil, err
	}
	return []stats.ColumnStats{col1, col2}, nil
}

func (c *Client) plotPath(outName, fallback string) (string, error) {
	name := outName
	if name == "" {
		name = fallback
	}
	if filepath.Dir(name) == "." {
		name = filepath.Join(c.plotsDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return "", err
	}
	return name, nil
}

func extractors(req TableRequest) (dataextract.ExtractFunc, dataextract.ExtractFunc, error) {
	if req.Col1 == "" || req.Col2 == "" {
		return nil, nil, errors.New("both column names are required")
	}
	f1, err := dataextract.ExtractorByName(req.Col1)
	if err != nil {
		return nil, nil, err
	}
	f2, err := dataextract.ExtractorByName(req.Col2)
	if err != nil {
		return nil, nil, err
	}
	return f1, f2, nil
}
