package sync

import (
  "fmt"
  "net/url"
  "strings"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "github.com/tidwall/gjson"
)

func timelineJSON(container string, entries ...string) string {
  body := fmt.Sprintf(
    `{"instructions":[{"type":"TimelineAddEntries","entries":[%s]}]}`,
    strings.Join(entries, ","),
  )
  keys := strings.Split(container, ".")
  for i := len(keys) - 1; i >= 0; i-- {
    body = fmt.Sprintf(`{"%s":%s}`, keys[i], body)
  }
  return body
}

func tweetEntry(id string) string {
  return fmt.Sprintf(
    `{"entryId":"tweet-%s","sortIndex":"17%s","content":{"itemContent":{"tweet_results":{"result":{"rest_id":"%s"}}}}}`,
    id, id, id,
  )
}

func cursorEntry(value string) string {
  return fmt.Sprintf(
    `{"entryId":"cursor-bottom-0","content":{"value":"%s"}}`,
    value,
  )
}

func TestParseLikesResponse(t *testing.T) {
  body := timelineJSON(
    "data.user.result.timeline.timeline",
    tweetEntry("100"),
    tweetEntry("200"),
    cursorEntry("next-page"),
  )

  entries, cursor := ParseLikesResponse([]byte(body))
  require.Len(t, entries, 2)
  assert.Equal(t, "100", entries[0].Tweet.Get("rest_id").Str)
  assert.Equal(t, "17100", entries[0].SortIndex)
  assert.Equal(t, "200", entries[1].Tweet.Get("rest_id").Str)
  assert.Equal(t, "next-page", cursor)
}

func TestParseBookmarksResponse(t *testing.T) {
  body := timelineJSON(
    "data.bookmark_timeline_v2.timeline",
    tweetEntry("100"),
  )

  entries, cursor := ParseBookmarksResponse([]byte(body))
  require.Len(t, entries, 1)
  assert.Empty(t, cursor)
}

func TestParseUserTweetsResponseFallback(t *testing.T) {
  v2 := timelineJSON("data.user.result.timeline_v2.timeline", tweetEntry("100"))
  entries, _ := ParseUserTweetsResponse([]byte(v2))
  require.Len(t, entries, 1)

  legacy := timelineJSON("data.user.result.timeline.timeline", tweetEntry("200"))
  entries, _ = ParseUserTweetsResponse([]byte(legacy))
  require.Len(t, entries, 1)
  assert.Equal(t, "200", entries[0].Tweet.Get("rest_id").Str)
}

func TestParseHomeTimelineResponse(t *testing.T) {
  body := timelineJSON(
    "data.home.home_timeline_urt",
    tweetEntry("100"),
    cursorEntry("older"),
  )

  entries, cursor := ParseHomeTimelineResponse([]byte(body))
  require.Len(t, entries, 1)
  assert.Equal(t, "older", cursor)
}

func TestParseEmptyResponse(t *testing.T) {
  entries, cursor := ParseLikesResponse([]byte(`{"data":{}}`))
  assert.Empty(t, entries)
  assert.Empty(t, cursor)
}

func TestParseTweetDetailResponse(t *testing.T) {
  body := `{"data":{"threaded_conversation_with_injections_v2":{"instructions":[
    {"type":"TimelineAddEntries","entries":[
      {"entryId":"tweet-100","content":{"itemContent":{"tweet_results":{"result":{"rest_id":"100"}}}}},
      {"entryId":"conversationthread-1","content":{"items":[
        {"item":{"itemContent":{"tweet_results":{"result":{"rest_id":"200"}}}}},
        {"item":{"itemContent":{"tweet_results":{"result":{"rest_id":"300"}}}}}
      ]}},
      {"entryId":"cursor-bottom-0","content":{"value":"ignored"}}
    ]}
  ]}}}`

  tweets := ParseTweetDetailResponse([]byte(body))
  require.Len(t, tweets, 3)
  assert.Equal(t, "100", tweets[0].Get("rest_id").Str)
  assert.Equal(t, "200", tweets[1].Get("rest_id").Str)
  assert.Equal(t, "300", tweets[2].Get("rest_id").Str)
}

func TestBuildLikesUrl(t *testing.T) {
  raw := BuildLikesUrl("https://x.com/i/api/graphql", "abc123", "42", "")

  parsed, err := url.Parse(raw)
  require.NoError(t, err)
  assert.True(t, strings.HasSuffix(parsed.Path, "/abc123/Likes"))

  variables := gjson.Parse(parsed.Query().Get("variables"))
  assert.Equal(t, "42", variables.Get("userId").Str)
  assert.False(t, variables.Get("cursor").Exists())

  features := gjson.Parse(parsed.Query().Get("features"))
  assert.True(t, features.Get("responsive_web_graphql_timeline_navigation_enabled").Bool())
}

func TestBuildLikesUrlWithCursor(t *testing.T) {
  raw := BuildLikesUrl("https://x.com/i/api/graphql", "abc123", "42", "page-2")

  parsed, err := url.Parse(raw)
  require.NoError(t, err)
  variables := gjson.Parse(parsed.Query().Get("variables"))
  assert.Equal(t, "page-2", variables.Get("cursor").Str)
}

func TestBuildUserTweetsUrlFieldToggles(t *testing.T) {
  raw := BuildUserTweetsUrl("https://x.com/i/api/graphql", "abc123", "42", "")

  parsed, err := url.Parse(raw)
  require.NoError(t, err)
  toggles := gjson.Parse(parsed.Query().Get("fieldToggles"))
  assert.True(t, toggles.Get("withArticleRichContentState").Bool())
}

func TestBuildBookmarksUrlFeatures(t *testing.T) {
  raw := BuildBookmarksUrl("https://x.com/i/api/graphql", "abc123", "")

  parsed, err := url.Parse(raw)
  require.NoError(t, err)
  features := gjson.Parse(parsed.Query().Get("features"))
  assert.True(t, features.Get("graphql_timeline_v2_bookmark_timeline").Bool())
}

func TestBuildBookmarkFolderUrl(t *testing.T) {
  raw := BuildBookmarkFolderUrl("https://x.com/i/api/graphql", "abc123", "folder-1", "")

  parsed, err := url.Parse(raw)
  require.NoError(t, err)
  assert.True(t, strings.HasSuffix(parsed.Path, "/abc123/BookmarkFolderTimeline"))
  variables := gjson.Parse(parsed.Query().Get("variables"))
  assert.Equal(t, "folder-1", variables.Get("bookmark_collection_id").Str)
}

func TestParseBookmarkFolderResponse(t *testing.T) {
  body := timelineJSON(
    "data.bookmark_collection_timeline.timeline",
    tweetEntry("100"),
    cursorEntry("older"),
  )

  entries, cursor := ParseBookmarkFolderResponse([]byte(body))
  require.Len(t, entries, 1)
  assert.Equal(t, "100", entries[0].Tweet.Get("rest_id").Str)
  assert.Equal(t, "older", cursor)
}

func TestBuildTweetDetailUrl(t *testing.T) {
  raw := BuildTweetDetailUrl("https://x.com/i/api/graphql", "abc123", "100")

  parsed, err := url.Parse(raw)
  require.NoError(t, err)
  assert.True(t, strings.HasSuffix(parsed.Path, "/abc123/TweetDetail"))
  variables := gjson.Parse(parsed.Query().Get("variables"))
  assert.Equal(t, "100", variables.Get("focalTweetId").Str)
}
