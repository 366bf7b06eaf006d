package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/squareup/hkcost/errors"
	"github.com/squareup/hkcost/rowcount"
	"github.com/stretchr/testify/require"
)

const catalogFile = "../../schema/testdata/coi.yaml"

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	require.NoError(t, run(append([]string{"--catalog-file", catalogFile}, args...), out))
	return out.String()
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var hkErr errors.HkError
	require.True(t, errors.As(err, &hkErr), "not a HkError: %v", err)
	require.Equal(t, code, hkErr.Code)
}

func TestStatsCommand(t *testing.T) {
	out := runCommand(t, "stats")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header, four tables and three indexes
	require.Len(t, lines, 8)
	require.Equal(t, []string{"ID", "KIND", "NAME", "ROWS", "WIDTH"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"0", "table", "customers", "1000", "26"}, strings.Fields(lines[1]))
	require.Contains(t, out, "group-index")
}

func TestScanCommand(t *testing.T) {
	out := runCommand(t, "scan", "--row-type", "orders")
	require.True(t, strings.HasPrefix(out, "rows = 10000, cost = "), out)

	out = runCommand(t, "scan", "--row-type", "customers_name", "--rows", "10")
	require.True(t, strings.HasPrefix(out, "rows = 10, cost = "), out)
}

func TestScanUnknownRowType(t *testing.T) {
	err := run([]string{"--catalog-file", catalogFile, "scan", "--row-type", "nope"}, &bytes.Buffer{})
	requireCode(t, err, errors.UnknownRowType)
}

func TestGroupScanCommand(t *testing.T) {
	out := runCommand(t, "group-scan", "--table", "customers")
	require.True(t, strings.HasPrefix(out, "rows = 61000, cost = "), out)
}

func TestBranchLookupCommand(t *testing.T) {
	out := runCommand(t, "branch-lookup", "--table", "orders")
	require.True(t, strings.HasPrefix(out, "rows = 6, cost = "), out)
}

func TestAncestorsCommand(t *testing.T) {
	out := runCommand(t, "ancestors", "--table", "items")
	require.True(t, strings.HasPrefix(out, "rows = 2, cost = "), out)
}

func TestRandomModelCommand(t *testing.T) {
	first := runCommand(t, "--model", "random", "--random-seed", "7", "scan", "--row-type", "items")
	second := runCommand(t, "--model", "random", "--random-seed", "7", "scan", "--row-type", "items")
	require.Equal(t, first, second)
	require.True(t, strings.HasPrefix(first, "rows = 50000, cost = "), first)
}

func TestMissingCatalogFile(t *testing.T) {
	err := run([]string{"stats"}, &bytes.Buffer{})
	requireCode(t, err, errors.InvalidConfiguration)
}

func TestRecordCountsRequiresStatsDir(t *testing.T) {
	err := run([]string{"--catalog-file", catalogFile, "record-counts"}, &bytes.Buffer{})
	requireCode(t, err, errors.InvalidConfiguration)
}

func TestRecordCountsThenScan(t *testing.T) {
	dir := t.TempDir()
	out := runCommand(t, "--stats-dir", dir, "record-counts")
	require.Equal(t, "recorded 3 row counts\n", out)

	store, err := rowcount.OpenStore(dir)
	require.NoError(t, err)
	count, ok, err := store.Get("orders")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(10000), count)
	require.NoError(t, store.Put("orders", 42))
	require.NoError(t, store.Close())

	out = runCommand(t, "--stats-dir", dir, "scan", "--row-type", "orders")
	require.True(t, strings.HasPrefix(out, "rows = 42, cost = "), out)

	// Tables missing from the store fall back to the catalog file.
	out = runCommand(t, "--stats-dir", dir, "scan", "--row-type", "customers")
	require.True(t, strings.HasPrefix(out, "rows = 1000, cost = "), out)
}
