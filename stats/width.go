package stats

import "github.com/squareup/hkcost/schema"

const (
	// IntegerFieldWidth is used for every member of the integer family whatever its declared size.
	IntegerFieldWidth = 8
	// LargeObjectFieldWidth is used for TEXT and BLOB columns, which are stored out of line.
	LargeObjectFieldWidth = 100000
	// VariableLengthUtilization is the assumed average fill of a variable length string or binary column.
	VariableLengthUtilization = 0.3
	// HKeyOrdinalWidth is the per segment overhead of a hierarchical key.
	HKeyOrdinalWidth = 1
)

// FieldWidth estimates the number of bytes a value of the column occupies in a stored row.
func FieldWidth(column *schema.Column) int {
	t := column.Type
	switch {
	case t.FixedSize && t.Integer:
		return IntegerFieldWidth
	case t.FixedSize:
		return t.Size
	case t.IsLargeObject():
		return LargeObjectFieldWidth
	case t.VariableLength && (t.Category == schema.CategoryString || t.Category == schema.CategoryBinary):
		return int(float64(column.AverageStorageSize()) * VariableLengthUtilization)
	default:
		return column.AverageStorageSize()
	}
}

func columnsWidth(columns []*schema.Column) int {
	width := 0
	for _, column := range columns {
		width += FieldWidth(column)
	}
	return width
}

// HKeyWidth estimates the width of a table's hierarchical key: an ordinal byte per segment plus the width of each
// key column.
func HKeyWidth(table *schema.Table) int {
	width := 0
	for _, segment := range table.HKey() {
		width += HKeyOrdinalWidth + columnsWidth(segment.Columns)
	}
	return width
}
