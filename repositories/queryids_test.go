package repositories

import (
  "strings"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/tfriedel/tweethoarder/config"
)

func TestExtractOperationsExportForms(t *testing.T) {
  content := `e.exports={queryId:"abc123",operationName:"Likes",operationType:"query"}` +
    `e.exports={operationName:"Bookmarks",queryId:"def456"}`
  targets := map[string]bool{
    "Likes":     true,
    "Bookmarks": true,
  }
  discovered := map[string]string{}

  ExtractOperations(content, targets, discovered)

  assert.Equal(t, "abc123", discovered["Likes"])
  assert.Equal(t, "def456", discovered["Bookmarks"])
}

func TestExtractOperationsProximityForm(t *testing.T) {
  content := `{operationName:"UserTweets",metadata:{},queryId:"xyz789"}`
  targets := map[string]bool{
    "UserTweets": true,
  }
  discovered := map[string]string{}

  ExtractOperations(content, targets, discovered)

  assert.Equal(t, "xyz789", discovered["UserTweets"])
}

func TestExtractOperationsWideGap(t *testing.T) {
  filler := strings.Repeat("x", 800)
  content := `{operationName:"Bookmarks",` + filler + `,queryId:"gap123"}`
  targets := map[string]bool{
    "Bookmarks": true,
  }
  discovered := map[string]string{}

  ExtractOperations(content, targets, discovered)

  assert.Equal(t, "gap123", discovered["Bookmarks"])
}

func TestExtractOperationsIgnoresNonTargets(t *testing.T) {
  content := `e.exports={queryId:"abc123",operationName:"SomethingElse"}`
  targets := map[string]bool{
    "Likes": true,
  }
  discovered := map[string]string{}

  ExtractOperations(content, targets, discovered)

  assert.Empty(t, discovered)
}

func TestExtractOperationsRejectsBadQueryId(t *testing.T) {
  content := `e.exports={queryId:"not a valid id!",operationName:"Likes"}`
  targets := map[string]bool{
    "Likes": true,
  }
  discovered := map[string]string{}

  ExtractOperations(content, targets, discovered)

  assert.Empty(t, discovered)
}

func TestExtractOperationsKeepsFirstMatch(t *testing.T) {
  content := `e.exports={queryId:"first",operationName:"Likes"}` +
    `e.exports={queryId:"second",operationName:"Likes"}`
  targets := map[string]bool{
    "Likes": true,
  }
  discovered := map[string]string{}

  ExtractOperations(content, targets, discovered)

  assert.Equal(t, "first", discovered["Likes"])
}

func TestQueryIdsFallback(t *testing.T) {
  repo := &QueryIdsRepository{}

  queryID, err := repo.Get("Likes")
  require.NoError(t, err)
  assert.Equal(t, config.FALLBACK_QUERY_IDS["Likes"], queryID)

  _, err = repo.Get("NoSuchOperation")
  assert.Error(t, err)
}
