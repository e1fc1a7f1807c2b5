package repository

import (
	"path/filepath"
	"testing"
	"time"

	"go-stock-ledger/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)

func newTestHistoryRepo(t *testing.T) *historyRepo {
	t.Helper()
	repo := NewHistoryRepo(filepath.Join(t.TempDir(), "history.csv"), DefaultRetention, nil).(*historyRepo)
	repo.now = func() time.Time { return fixedNow }
	return repo
}

func seedHistory(t *testing.T, repo *historyRepo, rows ...[]string) {
	t.Helper()
	require.NoError(t, repo.file.write(rows))
}

func historyRow(ts time.Time, op model.Operation, part string, qty string) []string {
	return []string{ts.Format(model.TimestampLayout), string(op), part, "Pen", qty, "box"}
}

func TestHistoryRepo_AppendCreatesFile(t *testing.T) {
	repo := newTestHistoryRepo(t)

	entry, err := repo.Append(model.OpInbound, "A001", "Pen", 5, "box")
	require.NoError(t, err)
	assert.Equal(t, fixedNow, entry.Timestamp)

	entries, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.HistoryEntry{
		Timestamp:  fixedNow,
		Operation:  model.OpInbound,
		PartNumber: "A001",
		Name:       "Pen",
		Quantity:   5,
		Unit:       "box",
	}, entries[0])
}

func TestHistoryRepo_FindAllOnMissingFile(t *testing.T) {
	entries, err := newTestHistoryRepo(t).FindAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryRepo_AppendPrunesOldEntries(t *testing.T) {
	repo := newTestHistoryRepo(t)
	seedHistory(t, repo,
		historyRow(fixedNow.AddDate(0, 0, -15), model.OpInbound, "OLD", "1"),
		historyRow(fixedNow.AddDate(0, 0, -13), model.OpOutbound, "KEEP", "2"),
	)

	_, err := repo.Append(model.OpInbound, "NEW", "Pen", 3, "box")
	require.NoError(t, err)

	entries, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "KEEP", entries[0].PartNumber)
	assert.Equal(t, "NEW", entries[1].PartNumber)
}

func TestHistoryRepo_EntryExactlyAtCutoffIsKept(t *testing.T) {
	repo := newTestHistoryRepo(t)
	seedHistory(t, repo, historyRow(fixedNow.Add(-DefaultRetention), model.OpInbound, "EDGE", "1"))

	_, err := repo.Append(model.OpInbound, "NEW", "Pen", 1, "box")
	require.NoError(t, err)

	entries, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryRepo_MalformedTimestampSkipsPruning(t *testing.T) {
	repo := newTestHistoryRepo(t)
	seedHistory(t, repo,
		historyRow(fixedNow.AddDate(0, 0, -20), model.OpInbound, "OLD", "1"),
		[]string{"yesterday-ish", "inbound", "BAD", "Pen", "1", "box"},
	)

	_, err := repo.Append(model.OpOutbound, "NEW", "Pen", 1, "box")
	require.NoError(t, err)

	rows, err := repo.file.read()
	require.NoError(t, err)
	require.Len(t, rows, 3, "nothing is pruned when a timestamp is unreadable")
	assert.Equal(t, "OLD", rows[0][2])
	assert.Equal(t, "BAD", rows[1][2])
	assert.Equal(t, "NEW", rows[2][2])

	// the display listing leaves out the unreadable row
	entries, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryRepo_FindAllSkipsUnknownOperation(t *testing.T) {
	repo := newTestHistoryRepo(t)
	seedHistory(t, repo,
		historyRow(fixedNow.Add(-time.Hour), model.OpInbound, "A001", "2"),
		historyRow(fixedNow.Add(-time.Hour), model.Operation("transfer"), "A001", "1"),
		historyRow(fixedNow.Add(-time.Hour), model.OpOutbound, "A001", "1"),
	)

	entries, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.OpInbound, entries[0].Operation)
	assert.Equal(t, model.OpOutbound, entries[1].Operation)
}

func TestHistoryRepo_CustomRetention(t *testing.T) {
	repo := NewHistoryRepo(filepath.Join(t.TempDir(), "history.csv"), 24*time.Hour, nil).(*historyRepo)
	repo.now = func() time.Time { return fixedNow }
	seedHistory(t, repo, historyRow(fixedNow.AddDate(0, 0, -2), model.OpInbound, "OLD", "1"))

	_, err := repo.Append(model.OpInbound, "NEW", "Pen", 1, "box")
	require.NoError(t, err)

	entries, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NEW", entries[0].PartNumber)
}

func TestHistoryRepo_GetStockMovement(t *testing.T) {
	repo := newTestHistoryRepo(t)
	day1 := fixedNow.AddDate(0, 0, -2)
	day2 := fixedNow.AddDate(0, 0, -1)
	seedHistory(t, repo,
		historyRow(day2, model.OpInbound, "A001", "4"),
		historyRow(day1, model.OpInbound, "A001", "10"),
		historyRow(day1, model.OpOutbound, "A001", "3"),
		historyRow(day2, model.OpOutbound, "A001", "1"),
		historyRow(fixedNow.AddDate(0, 0, -10), model.OpInbound, "A001", "99"),
	)

	data, err := repo.GetStockMovement(fixedNow.AddDate(0, 0, -7), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, []StockMovementData{
		{Date: day1.Format("2006-01-02"), Inbound: 10, Outbound: 3},
		{Date: day2.Format("2006-01-02"), Inbound: 4, Outbound: 1},
	}, data)
}
