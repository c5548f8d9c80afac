package db_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle/assets"
	"github.com/robalobadob/wordle/apps/wordle/internal/db"
)

func TestMigrate_Embedded(t *testing.T) {
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, db.Migrate(conn, assets.Migrations()))
	// Second run is a no-op.
	require.NoError(t, db.Migrate(conn, assets.Migrations()))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 3, n)

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestMigrate_OrderAndFailure(t *testing.T) {
	conn, err := db.Open(filepath.Join(t.TempDir(), "nested", "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	fsys := fstest.MapFS{
		"002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('b');`)},
		"001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"README.md": {Data: []byte(`ignored`)},
	}
	require.NoError(t, db.Migrate(conn, fsys))

	var v string
	require.NoError(t, conn.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "b", v)

	bad := fstest.MapFS{"003_bad.sql": {Data: []byte(`NOT SQL;`)}}
	assert.Error(t, db.Migrate(conn, bad))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(1) FROM _migrations WHERE name='003_bad.sql'`).Scan(&n))
	assert.Equal(t, 0, n)
}
