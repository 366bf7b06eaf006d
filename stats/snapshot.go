package stats

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/squareup/hkcost/schema"
)

// Snapshot holds the statistics of every table and index of a catalog for one planning pass. It is fully built by
// NewSnapshot and read-only afterwards, so it can be shared by goroutines searching the same pass.
type Snapshot struct {
	stats map[schema.RowTypeID]*RowTypeStats
}

func NewSnapshot(catalog *schema.Catalog, provider RowCountProvider) *Snapshot {
	rowTypes := catalog.RowTypes()
	snapshot := &Snapshot{stats: make(map[schema.RowTypeID]*RowTypeStats, len(rowTypes))}
	for _, rt := range rowTypes {
		var s *RowTypeStats
		switch rt := rt.(type) {
		case *schema.Table:
			s = ForTable(rt, provider)
		case *schema.Index:
			s = ForIndex(rt, provider)
		default:
			panic(fmt.Sprintf("unexpected row type %T", rt))
		}
		snapshot.stats[rt.RowTypeID()] = s
		log.Debugf("%s %s has %d rows of width %d", s.Kind, rt.RowTypeName(), s.rowCount, s.rowWidth)
	}
	return snapshot
}

// Get returns the statistics of the row type with the given id. Asking for a row type that is not part of the
// catalog the snapshot was built from is a programming error and panics.
func (s *Snapshot) Get(id schema.RowTypeID) *RowTypeStats {
	rts, ok := s.stats[id]
	if !ok {
		panic(fmt.Sprintf("no statistics for row type %d", id))
	}
	return rts
}

func (s *Snapshot) Table(table *schema.Table) *RowTypeStats {
	return s.Get(table.ID)
}

func (s *Snapshot) Index(index *schema.Index) *RowTypeStats {
	return s.Get(index.ID)
}

func (s *Snapshot) Len() int {
	return len(s.stats)
}
