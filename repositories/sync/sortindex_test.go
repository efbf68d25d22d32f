package sync

import (
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
)

func TestSortIndexGeneratorDecreases(t *testing.T) {
  generator := NewSortIndexGenerator("")

  assert.Equal(t, config.INITIAL_SORT_INDEX, generator.Next())
  assert.Equal(t, "8999999999999999999", generator.Next())
  assert.Equal(t, "8999999999999999998", generator.Next())
  assert.Equal(t, "8999999999999999997", generator.Current())
}

func TestSortIndexGeneratorResume(t *testing.T) {
  generator := NewSortIndexGenerator("5000")

  assert.Equal(t, "5000", generator.Next())
  assert.Equal(t, "4999", generator.Next())
}

func TestSortIndexGeneratorInvalidSeed(t *testing.T) {
  generator := NewSortIndexGenerator("not-a-number")

  assert.Equal(t, config.INITIAL_SORT_INDEX, generator.Next())
}

func TestSortIndexFromCheckpoint(t *testing.T) {
  db := newTestDB(t)
  checkpoints := &repositories.CheckpointsRepository{Db: db}
  tweets := &repositories.TweetsRepository{Db: db}

  require.NoError(t, checkpoints.Save("like", "cursor-1", "111", "7000"))

  generator := SortIndexFromCheckpointOrDb(checkpoints, tweets, "like")
  assert.Equal(t, "7000", generator.Next())
}

func TestSortIndexFromDbMinimum(t *testing.T) {
  db := newTestDB(t)
  checkpoints := &repositories.CheckpointsRepository{Db: db}
  tweets := &repositories.TweetsRepository{Db: db}

  for i, sortIndex := range []string{"3000", "1000", "2000"} {
    id := string(rune('1' + i))
    require.NoError(t, tweets.Save(testTweet(id, "42", "tester")))
    require.NoError(t, tweets.AddToCollection(id, "like", sortIndex, "", ""))
  }

  generator := SortIndexFromCheckpointOrDb(checkpoints, tweets, "like")
  assert.Equal(t, "999", generator.Next())
  assert.Equal(t, "998", generator.Next())
}

func TestSortIndexFromEmptyDb(t *testing.T) {
  db := newTestDB(t)
  checkpoints := &repositories.CheckpointsRepository{Db: db}
  tweets := &repositories.TweetsRepository{Db: db}

  generator := SortIndexFromCheckpointOrDb(checkpoints, tweets, "like")
  assert.Equal(t, config.INITIAL_SORT_INDEX, generator.Next())
}
