package database

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDB struct {
	Database
	lastQuery string
	lastVars  map[string]interface{}
}

func (r *recordingDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.lastQuery = query
	r.lastVars = vars
	return []interface{}{}, nil
}

func TestTxBuilder_Build_WrapsInTransaction(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	tb.Add("CREATE event CONTENT { title: $title }", map[string]interface{}{"title": "Launch party"})

	query, vars := tb.Build()

	require.NotEmpty(t, query)
	assert.True(t, strings.HasPrefix(query, "BEGIN TRANSACTION;"))
	assert.True(t, strings.HasSuffix(query, "COMMIT TRANSACTION;"))
	assert.Len(t, vars, 1)
}

func TestTxBuilder_Add_NamespacesVariables(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	m1 := tb.Add("UPDATE $id SET title = $title", map[string]interface{}{"id": "event:1", "title": "a"})
	m2 := tb.Add("UPDATE $id SET title = $title", map[string]interface{}{"id": "event:2", "title": "b"})

	// Same source variable names must map to distinct transaction variables
	assert.NotEqual(t, m1["id"], m2["id"])
	assert.NotEqual(t, m1["title"], m2["title"])

	query, vars := tb.Build()
	assert.NotContains(t, query, "$title ")
	assert.Len(t, vars, 4)
	assert.Equal(t, "event:1", vars[m1["id"]])
	assert.Equal(t, "event:2", vars[m2["id"]])
}

func TestTxBuilder_Build_Empty(t *testing.T) {
	t.Parallel()

	query, vars := NewTxBuilder().Build()

	assert.Empty(t, query)
	assert.Nil(t, vars)
}

func TestTxBuilder_AddRaw_KeepsStatementVerbatim(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	tb.AddRaw("DELETE team WHERE event = $event_id")

	query, _ := tb.Build()
	assert.Contains(t, query, "DELETE team WHERE event = $event_id")
}

func TestExecuteTransaction_EmptyBuilder_NoQuery(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	results, err := ExecuteTransaction(context.Background(), db, NewTxBuilder())

	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Empty(t, db.lastQuery)
}

func TestAtomicBatch_Execute_RunsSingleTransaction(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	batch := NewAtomicBatch().
		Add("DELETE team WHERE event = $event", map[string]interface{}{"event": "event:1"}).
		Add("DELETE $id", map[string]interface{}{"id": "event:1"})

	require.Equal(t, 2, batch.Len())
	require.NoError(t, batch.Execute(context.Background(), db))

	assert.Contains(t, db.lastQuery, "BEGIN TRANSACTION;")
	assert.Contains(t, db.lastQuery, "COMMIT TRANSACTION;")
	assert.Len(t, db.lastVars, 2)
}

func TestAtomicBatch_Execute_Empty_NoQuery(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	require.NoError(t, NewAtomicBatch().Execute(context.Background(), db))
	assert.Empty(t, db.lastQuery)
}
