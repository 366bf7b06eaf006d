package errors

import (
	"fmt"
	"sort"
	"strings"
)

type ErrorCode int

const (
	InternalError = iota
	InvalidConfiguration
	InvalidCatalog
	UnknownTable
	UnknownIndex
	UnknownColumn
	UnknownType
	UnknownRowType
	DuplicateName
)

func NewInternalError(msg string) HkError {
	return NewHkErrorf(InternalError, "Internal error - %s", msg)
}

func NewInvalidConfigurationError(msg string) HkError {
	return NewHkErrorf(InvalidConfiguration, "Invalid configuration: %s", msg)
}

func NewInvalidCatalogError(msg string) HkError {
	return NewHkErrorf(InvalidCatalog, "Invalid catalog: %s", msg)
}

func NewUnknownTableError(tableName string) HkError {
	return NewHkErrorf(UnknownTable, "Unknown table: %s", tableName)
}

func NewUnknownIndexError(indexName string) HkError {
	return NewHkErrorf(UnknownIndex, "Unknown index: %s", indexName)
}

func NewUnknownColumnError(tableName string, columnName string) HkError {
	return NewHkErrorf(UnknownColumn, "Table %s does not have a column %s", tableName, columnName)
}

func NewUnknownTypeError(typeName string) HkError {
	return NewHkErrorf(UnknownType, "Unknown column type %s", typeName)
}

func NewUnknownRowTypeError(name string, known []string) HkError {
	return NewHkErrorf(UnknownRowType, "Unknown row type %s, known row types are %s", name, joinSorted(known))
}

func NewDuplicateNameError(kind string, name string) HkError {
	return NewHkErrorf(DuplicateName, "Duplicate %s name: %s", kind, name)
}

func joinSorted(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted) // Need to sort to give deterministic results
	return strings.Join(sorted, ", ")
}

func NewHkErrorf(errorCode ErrorCode, msgFormat string, args ...interface{}) HkError {
	msg := fmt.Sprintf(fmt.Sprintf("HKC%04d - %s", errorCode, msgFormat), args...)
	return HkError{Code: errorCode, Msg: msg}
}

func NewHkError(errorCode ErrorCode, msg string) HkError {
	return HkError{Code: errorCode, Msg: msg}
}

// HkError is any kind of error that is exposed to the user via the command line tool
type HkError struct {
	Code ErrorCode
	Msg  string
}

func (u HkError) Error() string {
	return u.Msg
}

// MaybeAddStack adds a stack trace unless the error is an HkError, which is meant for the user and is
// already self describing.
func MaybeAddStack(err error) error {
	if _, ok := err.(HkError); !ok {
		return WithStack(err)
	}
	return err
}
