package rowcount

import (
	"github.com/squareup/hkcost/schema"
)

// Static serves row counts from memory, keyed by table name. Tables without an entry have no rows.
type Static map[string]int64

func (s Static) RowCount(table *schema.Table) int64 {
	return s[table.Name]
}

// Merge returns a new Static holding the entries of s overridden by those of other.
func (s Static) Merge(other Static) Static {
	merged := make(Static, len(s)+len(other))
	for name, count := range s {
		merged[name] = count
	}
	for name, count := range other {
		merged[name] = count
	}
	return merged
}
