package db

import (
	"io"
	"testing"
	"testing/fstest"

	"matchup/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readUp(t *testing.T, files fstest.MapFS, version uint) string {
	t.Helper()
	driver, err := openSource(files)
	require.NoError(t, err)
	defer driver.Close()
	body, _, err := driver.ReadUp(version)
	require.NoError(t, err)
	defer body.Close()
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	return string(content)
}

func TestMigrationSourceKeepsStatementsWhole(t *testing.T) {
	up := "INSERT INTO ads (id, title) VALUES ('a3', 'Sale;\nends soon');\nSELECT 1;\n"
	files := fstest.MapFS{
		"0001_ads.up.sql":   {Data: []byte(up)},
		"0001_ads.down.sql": {Data: []byte("DELETE FROM ads WHERE id = 'a3';\n")},
	}
	assert.Equal(t, up, readUp(t, files, 1))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	driver, err := openSource(migrations.FS)
	require.NoError(t, err)
	defer driver.Close()

	var versions []uint
	version, err := driver.First()
	require.NoError(t, err)
	for {
		versions = append(versions, version)
		up, _, err := driver.ReadUp(version)
		require.NoError(t, err, "up %d", version)
		up.Close()
		down, _, err := driver.ReadDown(version)
		require.NoError(t, err, "down %d", version)
		down.Close()

		version, err = driver.Next(version)
		if err != nil {
			break
		}
	}
	assert.Equal(t, []uint{1, 2}, versions)
}
