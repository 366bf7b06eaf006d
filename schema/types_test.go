package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeByName(t *testing.T) {
	typ, err := TypeByName(" varchar ")
	require.NoError(t, err)
	require.Equal(t, VarcharType, typ)
	typ, err = TypeByName("integer")
	require.NoError(t, err)
	require.Equal(t, IntType, typ)
	_, err = TypeByName("point")
	require.Error(t, err)
}

func TestLargeObjectSentinel(t *testing.T) {
	require.True(t, TextType.IsLargeObject())
	require.True(t, BlobType.IsLargeObject())
	require.False(t, VarcharType.IsLargeObject())
	require.False(t, IntType.IsLargeObject())
}

func TestMaxStorageSize(t *testing.T) {
	testCases := []struct {
		name     string
		column   Column
		expected int
	}{
		{name: "int", column: Column{Type: IntType}, expected: 4},
		{name: "double", column: Column{Type: DoubleType}, expected: 8},
		{name: "short varchar", column: Column{Type: VarcharType, Length: 32}, expected: 33},
		{name: "long varchar", column: Column{Type: VarcharType, Length: 1000}, expected: 1002},
		{name: "default varchar", column: Column{Type: VarcharType}, expected: 256},
		{name: "char", column: Column{Type: CharType, Length: 2}, expected: 2},
		{name: "decimal", column: Column{Type: DecimalType, Length: 10}, expected: 6},
		{name: "blob", column: Column{Type: BlobType}, expected: 65539},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.column.MaxStorageSize())
		})
	}
}

func TestAverageStorageSize(t *testing.T) {
	c := Column{Type: VarcharType, Length: 100}
	require.Equal(t, 101, c.AverageStorageSize())
	c.SetAverageStorageSize(40)
	require.Equal(t, 40, c.AverageStorageSize())
}
