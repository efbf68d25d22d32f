package repositories

import (
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "gorm.io/gorm/logger"

  "github.com/tfriedel/tweethoarder/models"
)

func newTestDB(t *testing.T) *gorm.DB {
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: logger.Default.LogMode(logger.Silent),
  })
  require.NoError(t, err)
  require.NoError(t, db.AutoMigrate(
    &models.Tweet{},
    &models.Collection{},
    &models.Checkpoint{},
    &models.ThreadContext{},
  ))
  return db
}

func TestCheckpointsLifecycle(t *testing.T) {
  repo := &CheckpointsRepository{
    Db: newTestDB(t),
  }

  checkpoint, err := repo.Load("like")
  require.NoError(t, err)
  assert.Nil(t, checkpoint)

  require.NoError(t, repo.Save("like", "cursor-1", "111", "8999999999999999980"))

  checkpoint, err = repo.Load("like")
  require.NoError(t, err)
  require.NotNil(t, checkpoint)
  assert.Equal(t, "cursor-1", checkpoint.Cursor)
  assert.Equal(t, "111", checkpoint.LastTweetID)
  assert.Equal(t, "8999999999999999980", checkpoint.SortIndexCounter)
  assert.Equal(t, "in_progress", checkpoint.Status)

  require.NoError(t, repo.Save("like", "cursor-2", "222", "8999999999999999960"))

  checkpoint, err = repo.Load("like")
  require.NoError(t, err)
  require.NotNil(t, checkpoint)
  assert.Equal(t, "cursor-2", checkpoint.Cursor)
  assert.Equal(t, "222", checkpoint.LastTweetID)

  require.NoError(t, repo.Clear("like"))

  checkpoint, err = repo.Load("like")
  require.NoError(t, err)
  assert.Nil(t, checkpoint)
}

func TestCheckpointsPerCollection(t *testing.T) {
  repo := &CheckpointsRepository{
    Db: newTestDB(t),
  }

  require.NoError(t, repo.Save("like", "cursor-like", "1", "100"))
  require.NoError(t, repo.Save("bookmark", "cursor-bookmark", "2", "200"))
  require.NoError(t, repo.Clear("like"))

  checkpoint, err := repo.Load("bookmark")
  require.NoError(t, err)
  require.NotNil(t, checkpoint)
  assert.Equal(t, "cursor-bookmark", checkpoint.Cursor)
}
