package storage

import (
	"context"

	"neptune/internal/model"
)

// Store persists assembled tables so expensive directory sweeps are not
// repeated for every plot.
type Store interface {
	Init(ctx context.Context) error
	SaveTable(ctx context.Context, record model.TableRecord) error
	GetTable(ctx context.Context, id string) (model.TableRecord, bool, error)
	ListTables(ctx context.Context) ([]model.TableRecord, error)
}
