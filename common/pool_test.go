package common

import (
  "path/filepath"
  "strings"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestDbPath(t *testing.T) {
  t.Setenv("DB_PATH", "/tmp/archive.db")
  assert.Equal(t, "/tmp/archive.db", DbPath())

  t.Setenv("DB_PATH", "")
  assert.True(t, strings.HasSuffix(DbPath(), "tweethoarder.db"))
}

func TestNewDB(t *testing.T) {
  t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))

  db := NewDB()
  require.NotNil(t, db)
  assert.NoError(t, db.Exec("SELECT 1").Error)
}
