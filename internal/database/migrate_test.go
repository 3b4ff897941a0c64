package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	requireDB(t)

	require.NoError(t, Migrate(t.Context(), testStore.GetPool()))

	var version int64
	err := testStore.GetPool().QueryRow(t.Context(),
		`SELECT max(version_id) FROM goose_db_version WHERE is_applied`).Scan(&version)
	require.NoError(t, err)
	require.EqualValues(t, 2, version)
}
