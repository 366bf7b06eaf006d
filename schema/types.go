package schema

import (
	"strings"

	"github.com/squareup/hkcost/errors"
)

type Category int

const (
	CategoryUnknown Category = iota
	CategoryNumeric
	CategoryString
	CategoryBinary
	CategoryTemporal
	CategoryBoolean
)

// NoDefaultLength is the DefaultLength of types whose values are stored out of line, i.e. TEXT and BLOB.
const NoDefaultLength = -1

// Type describes a column type as far as storage sizing is concerned.
type Type struct {
	Name     string
	Category Category
	// FixedSize types always occupy Size bytes.
	FixedSize bool
	Size      int
	// Integer is set for the integer numeric family (TINYINT through BIGINT).
	Integer bool
	// VariableLength is set when the declared maximum is only an upper bound on the stored length.
	VariableLength bool
	// DefaultLength is the declared length used when a column omits one. NoDefaultLength marks large objects.
	DefaultLength int
}

func (t *Type) IsLargeObject() bool {
	return t.DefaultLength == NoDefaultLength
}

func (t *Type) String() string {
	return t.Name
}

var (
	TinyIntType   = &Type{Name: "TINYINT", Category: CategoryNumeric, FixedSize: true, Size: 1, Integer: true}
	SmallIntType  = &Type{Name: "SMALLINT", Category: CategoryNumeric, FixedSize: true, Size: 2, Integer: true}
	MediumIntType = &Type{Name: "MEDIUMINT", Category: CategoryNumeric, FixedSize: true, Size: 3, Integer: true}
	IntType       = &Type{Name: "INT", Category: CategoryNumeric, FixedSize: true, Size: 4, Integer: true}
	BigIntType    = &Type{Name: "BIGINT", Category: CategoryNumeric, FixedSize: true, Size: 8, Integer: true}
	FloatType     = &Type{Name: "FLOAT", Category: CategoryNumeric, FixedSize: true, Size: 4}
	DoubleType    = &Type{Name: "DOUBLE", Category: CategoryNumeric, FixedSize: true, Size: 8}
	DecimalType   = &Type{Name: "DECIMAL", Category: CategoryNumeric, DefaultLength: 10}
	BooleanType   = &Type{Name: "BOOLEAN", Category: CategoryBoolean, FixedSize: true, Size: 1}
	DateType      = &Type{Name: "DATE", Category: CategoryTemporal, FixedSize: true, Size: 3}
	TimeType      = &Type{Name: "TIME", Category: CategoryTemporal, FixedSize: true, Size: 3}
	DateTimeType  = &Type{Name: "DATETIME", Category: CategoryTemporal, FixedSize: true, Size: 8}
	TimestampType = &Type{Name: "TIMESTAMP", Category: CategoryTemporal, FixedSize: true, Size: 4}
	CharType      = &Type{Name: "CHAR", Category: CategoryString, DefaultLength: 1}
	VarcharType   = &Type{Name: "VARCHAR", Category: CategoryString, VariableLength: true, DefaultLength: 255}
	BinaryType    = &Type{Name: "BINARY", Category: CategoryBinary, DefaultLength: 1}
	VarBinaryType = &Type{Name: "VARBINARY", Category: CategoryBinary, VariableLength: true, DefaultLength: 255}
	TextType      = &Type{Name: "TEXT", Category: CategoryString, VariableLength: true, DefaultLength: NoDefaultLength}
	BlobType      = &Type{Name: "BLOB", Category: CategoryBinary, VariableLength: true, DefaultLength: NoDefaultLength}

	typesByName = map[string]*Type{}
)

func init() {
	for _, t := range []*Type{
		TinyIntType, SmallIntType, MediumIntType, IntType, BigIntType, FloatType, DoubleType, DecimalType,
		BooleanType, DateType, TimeType, DateTimeType, TimestampType, CharType, VarcharType, BinaryType,
		VarBinaryType, TextType, BlobType,
	} {
		typesByName[t.Name] = t
	}
	typesByName["INTEGER"] = IntType
	typesByName["BOOL"] = BooleanType
	typesByName["NUMERIC"] = DecimalType
}

// TypeByName looks a type up by its SQL name, ignoring case.
func TypeByName(name string) (*Type, error) {
	t, ok := typesByName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.NewUnknownTypeError(name)
	}
	return t, nil
}
