package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazytable/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()

	s, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddAndGetRecent(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Add(history.Entry{Table: "tasks", Query: "joinOperator=or", FilterCount: 0, RecordedAt: at}))
	require.NoError(t, s.Add(history.Entry{Table: "users", Query: "sort=x", RecordedAt: at}))
	require.NoError(t, s.Add(history.Entry{Table: "tasks", Query: "filters=y", FilterCount: 2, RecordedAt: at.Add(time.Second)}))

	tasks, err := s.GetRecent("tasks", 10)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "filters=y", tasks[0].Query)
	assert.Equal(t, 2, tasks[0].FilterCount)
	assert.True(t, tasks[0].RecordedAt.Equal(at.Add(time.Second)))
	assert.Equal(t, "joinOperator=or", tasks[1].Query)

	all, err := s.GetRecent("", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "tasks", all[0].Table)
	assert.Equal(t, "users", all[1].Table)
}

func TestAddSkipsRepeatedQuery(t *testing.T) {
	t.Parallel()

	s := openStore(t)

	require.NoError(t, s.Add(history.Entry{Table: "tasks", Query: "a=1"}))
	require.NoError(t, s.Add(history.Entry{Table: "tasks", Query: "a=1"}))
	require.NoError(t, s.Add(history.Entry{Table: "users", Query: "a=1"}))

	tasks, err := s.GetRecent("tasks", 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.False(t, tasks[0].RecordedAt.IsZero())

	all, err := s.GetRecent("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	s := openStore(t)

	require.NoError(t, s.Add(history.Entry{Table: "tasks", Query: "joinOperator=or"}))
	require.NoError(t, s.Add(history.Entry{Table: "tasks", Query: "sort=title"}))

	found, err := s.Search("joinOperator", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "joinOperator=or", found[0].Query)
}

func TestReopenKeepsEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")

	s, err := history.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(history.Entry{Table: "tasks", Query: "a=1"}))
	require.NoError(t, s.Close())

	s, err = history.NewStore(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.GetRecent("tasks", 5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
