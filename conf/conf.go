package conf

import (
	"fmt"

	"github.com/squareup/hkcost/errors"
)

const (
	ModelStorage = "storage"
	ModelRandom  = "random"

	DefaultModel = ModelStorage
)

// Config selects the cost model and where its inputs come from.
type Config struct {
	Model       string `help:"Cost model to use" enum:"storage,random" default:"storage"`
	RandomSeed  int64  `help:"Seed of the generator used by the random cost model" default:"0"`
	CatalogFile string `help:"YAML file describing the groups, tables and indexes to cost against"`
	StatsDir    string `help:"Directory of the persisted row count store. If left blank, row counts come from the catalog file"`
}

func (c *Config) Validate() error {
	switch c.Model {
	case ModelStorage, ModelRandom:
	default:
		return errors.NewInvalidConfigurationError(fmt.Sprintf("Model must be one of %s or %s", ModelStorage, ModelRandom))
	}
	if c.CatalogFile == "" {
		return errors.NewInvalidConfigurationError("CatalogFile must be specified")
	}
	return nil
}

func NewDefaultConfig() *Config {
	return &Config{
		Model: DefaultModel,
	}
}

func NewTestConfig(catalogFile string) *Config {
	cfg := NewDefaultConfig()
	cfg.CatalogFile = catalogFile
	return cfg
}
