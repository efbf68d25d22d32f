package repositories

import (
  "fmt"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/tfriedel/tweethoarder/models"
)

func newTweet(id string) *models.Tweet {
  return &models.Tweet{
    ID:             id,
    Text:           fmt.Sprintf("tweet %v", id),
    AuthorID:       "42",
    AuthorUsername: "tester",
    PostedAt:       "2024-01-15T10:00:00Z",
  }
}

func TestTweetSaveUpsert(t *testing.T) {
  repo := &TweetsRepository{
    Db: newTestDB(t),
  }

  require.NoError(t, repo.Save(newTweet("100")))
  assert.True(t, repo.IsExists("100"))
  assert.False(t, repo.IsExists("200"))

  updated := newTweet("100")
  updated.Text = "edited"
  updated.LikeCount = 9
  require.NoError(t, repo.Save(updated))

  entity, err := repo.Find("100")
  require.NoError(t, err)
  assert.Equal(t, "edited", entity.Text)
  assert.Equal(t, 9, entity.LikeCount)
  assert.Equal(t, int64(1), repo.Total())
}

func TestAddToCollectionUpsert(t *testing.T) {
  repo := &TweetsRepository{
    Db: newTestDB(t),
  }

  require.NoError(t, repo.Save(newTweet("100")))
  require.NoError(t, repo.AddToCollection("100", "like", "5000", "", ""))
  require.NoError(t, repo.AddToCollection("100", "like", "4000", "", ""))
  require.NoError(t, repo.AddToCollection("100", "bookmark", "5000", "reading", ""))

  assert.True(t, repo.IsInCollection("100", "like"))
  assert.False(t, repo.IsInCollection("100", "feed"))
  assert.Equal(t, int64(1), repo.Count("like"))
  assert.Equal(t, int64(1), repo.Count("bookmark"))
  assert.Equal(t, "4000", repo.MinSortIndex("like"))

  var entity models.Collection
  require.NoError(t, repo.Db.Where("tweet_id=? AND collection_type=?", "100", "bookmark").Take(&entity).Error)
  assert.Equal(t, "reading", entity.BookmarkFolder)
}

func TestMinSortIndexNumericOrder(t *testing.T) {
  repo := &TweetsRepository{
    Db: newTestDB(t),
  }

  for i, sortIndex := range []string{"3000", "1000", "2000"} {
    id := fmt.Sprintf("%d", i+1)
    require.NoError(t, repo.Save(newTweet(id)))
    require.NoError(t, repo.AddToCollection(id, "like", sortIndex, "", ""))
  }
  assert.Equal(t, "1000", repo.MinSortIndex("like"))

  // Shorter digit strings are numerically smaller regardless of lexical order.
  require.NoError(t, repo.Save(newTweet("4")))
  require.NoError(t, repo.AddToCollection("4", "like", "999", "", ""))
  assert.Equal(t, "999", repo.MinSortIndex("like"))

  assert.Equal(t, "", repo.MinSortIndex("bookmark"))
}

func TestCollectionOrdering(t *testing.T) {
  repo := &TweetsRepository{
    Db: newTestDB(t),
  }

  rows := []struct {
    id        string
    sortIndex string
  }{
    {"1", "999"},
    {"2", "1000"},
    {"3", "998"},
  }
  for _, row := range rows {
    require.NoError(t, repo.Save(newTweet(row.id)))
    require.NoError(t, repo.AddToCollection(row.id, "like", row.sortIndex, "", ""))
  }

  tweets := repo.Collection("like", 1, 0)
  require.Len(t, tweets, 3)
  assert.Equal(t, "2", tweets[0].ID)
  assert.Equal(t, "1", tweets[1].ID)
  assert.Equal(t, "3", tweets[2].ID)

  paged := repo.Collection("like", 2, 2)
  require.Len(t, paged, 1)
  assert.Equal(t, "3", paged[0].ID)
}

func TestSaveThreadContext(t *testing.T) {
  repo := &TweetsRepository{
    Db: newTestDB(t),
  }

  require.NoError(t, repo.SaveThreadContext("200", "100", 1))
  require.NoError(t, repo.SaveThreadContext("200", "100", 2))

  var total int64
  repo.Db.Model(&models.ThreadContext{}).Count(&total)
  assert.Equal(t, int64(1), total)
}
