package costmodel

import (
	"fmt"

	"github.com/squareup/hkcost/conf"
	"github.com/squareup/hkcost/errors"
	"github.com/squareup/hkcost/schema"
	"github.com/squareup/hkcost/stats"
)

// Factory creates the cost model for one planning pass. Each call takes a fresh statistics snapshot; models are
// never reused across passes.
type Factory interface {
	NewModel(catalog *schema.Catalog, provider stats.RowCountProvider) *Model
}

type StorageFactory struct{}

func (StorageFactory) NewModel(catalog *schema.Catalog, provider stats.RowCountProvider) *Model {
	return NewStorageModel(stats.NewSnapshot(catalog, provider))
}

// RandomFactory seeds every model it creates with Seed, so repeated passes see the same sequence of perturbations.
type RandomFactory struct {
	Seed int64
}

func (f RandomFactory) NewModel(catalog *schema.Catalog, provider stats.RowCountProvider) *Model {
	return NewRandomModel(stats.NewSnapshot(catalog, provider), f.Seed)
}

func FactoryFor(cfg *conf.Config) (Factory, error) {
	switch cfg.Model {
	case conf.ModelStorage:
		return StorageFactory{}, nil
	case conf.ModelRandom:
		return RandomFactory{Seed: cfg.RandomSeed}, nil
	default:
		return nil, errors.NewInvalidConfigurationError(fmt.Sprintf("unknown cost model %q", cfg.Model))
	}
}
