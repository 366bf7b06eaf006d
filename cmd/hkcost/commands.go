package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/squareup/hkcost/conf"
	"github.com/squareup/hkcost/costmodel"
	"github.com/squareup/hkcost/errors"
	"github.com/squareup/hkcost/rowcount"
	"github.com/squareup/hkcost/schema"
	"github.com/squareup/hkcost/stats"
)

// environment is bound into every command's Run method.
type environment struct {
	cfg conf.Config
	out io.Writer
}

// load reads the catalog and the row counts for one planning pass.
func (e *environment) load() (*schema.Catalog, rowcount.Static, error) {
	cf, err := schema.LoadCatalog(e.cfg.CatalogFile)
	if err != nil {
		return nil, nil, err
	}
	counts := rowcount.Static(cf.RowCounts)
	if e.cfg.StatsDir != "" {
		store, err := rowcount.OpenStore(e.cfg.StatsDir)
		if err != nil {
			return nil, nil, err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Warnf("failed to close row count store %v", err)
			}
		}()
		stored, err := store.Snapshot()
		if err != nil {
			return nil, nil, err
		}
		counts = counts.Merge(stored)
	}
	return cf.Catalog, counts, nil
}

func (e *environment) model() (*costmodel.Model, *schema.Catalog, error) {
	cat, counts, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	factory, err := costmodel.FactoryFor(&e.cfg)
	if err != nil {
		return nil, nil, err
	}
	return factory.NewModel(cat, counts), cat, nil
}

func (e *environment) printEstimate(m *costmodel.Model, rowCount int64, cost float64) {
	fmt.Fprintln(e.out, m.AdjustCostEstimate(costmodel.CostEstimate{RowCount: rowCount, Cost: cost}).String())
}

type statsCmd struct{}

func (c *statsCmd) Run(env *environment) error {
	m, cat, err := env.model()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tROWS\tWIDTH")
	for _, rt := range cat.RowTypes() {
		s := m.Stats().Get(rt.RowTypeID())
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", rt.RowTypeID(), s.Kind, rt.RowTypeName(), s.RowCount(), s.RowWidth())
	}
	return errors.WithStack(tw.Flush())
}

type scanCmd struct {
	RowType string `help:"Table or index to scan" required:""`
	Rows    int64  `help:"Number of rows to read. If negative the whole table or index is read" default:"-1"`
}

func (c *scanCmd) Run(env *environment) error {
	m, cat, err := env.model()
	if err != nil {
		return err
	}
	rt, err := cat.RowTypeByName(c.RowType)
	if err != nil {
		return err
	}
	rows := c.Rows
	if rows < 0 {
		rows = m.Stats().Get(rt.RowTypeID()).RowCount()
	}
	var cost float64
	switch rt := rt.(type) {
	case *schema.Table:
		cost = m.TableScan(rt, rows)
	case *schema.Index:
		cost = m.IndexScan(rt, rows)
	default:
		return errors.NewInternalError(fmt.Sprintf("unexpected row type %T", rt))
	}
	env.printEstimate(m, rows, cost)
	return nil
}

type groupScanCmd struct {
	Table string `help:"Table at the top of the scan, usually a group root" required:""`
}

func (c *groupScanCmd) Run(env *environment) error {
	m, cat, err := env.model()
	if err != nil {
		return err
	}
	table, err := cat.Table(c.Table)
	if err != nil {
		return err
	}
	rows := int64(0)
	for _, t := range table.Branch() {
		rows += m.Stats().Table(t).RowCount()
	}
	env.printEstimate(m, rows, m.FullGroupScan(table))
	return nil
}

type branchLookupCmd struct {
	Table string `help:"Table whose rows root the branch" required:""`
}

func (c *branchLookupCmd) Run(env *environment) error {
	m, cat, err := env.model()
	if err != nil {
		return err
	}
	table, err := cat.Table(c.Table)
	if err != nil {
		return err
	}
	branchRows := branchRowCount(m.Stats(), table)
	env.printEstimate(m, branchRows, m.BranchLookup(table))
	return nil
}

// branchRowCount is the number of rows in an average branch under one row of root.
func branchRowCount(snapshot *stats.Snapshot, root *schema.Table) int64 {
	rootRows := snapshot.Table(root).RowCount()
	if rootRows == 0 {
		return 0
	}
	total := int64(0)
	for _, t := range root.Branch() {
		total += snapshot.Table(t).RowCount()
	}
	return total / rootRows
}

type ancestorsCmd struct {
	Table string `help:"Table whose ancestors are looked up" required:""`
}

func (c *ancestorsCmd) Run(env *environment) error {
	m, cat, err := env.model()
	if err != nil {
		return err
	}
	table, err := cat.Table(c.Table)
	if err != nil {
		return err
	}
	ancestors := table.Ancestors()
	env.printEstimate(m, int64(len(ancestors)), m.AncestorLookup(ancestors))
	return nil
}

type recordCountsCmd struct{}

func (c *recordCountsCmd) Run(env *environment) error {
	if env.cfg.StatsDir == "" {
		return errors.NewInvalidConfigurationError("StatsDir must be specified to record row counts")
	}
	cf, err := schema.LoadCatalog(env.cfg.CatalogFile)
	if err != nil {
		return err
	}
	store, err := rowcount.OpenStore(env.cfg.StatsDir)
	if err != nil {
		return err
	}
	if err := store.PutAll(cf.RowCounts); err != nil {
		_ = store.Close()
		return err
	}
	log.Infof("Recorded %d row counts in %s", len(cf.RowCounts), env.cfg.StatsDir)
	fmt.Fprintf(env.out, "recorded %d row counts\n", len(cf.RowCounts))
	return store.Close()
}
