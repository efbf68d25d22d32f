package sync

import (
  "encoding/json"
  "fmt"
  "net/url"
  "strings"

  "github.com/tidwall/gjson"
)

// Feature flags mirror what the web client sends; missing flags cause 404s
// that are indistinguishable from a stale query id.
func timelineFeatures() map[string]interface{} {
  return map[string]interface{}{
    "rweb_video_screen_enabled":                                               true,
    "profile_label_improvements_pcf_label_in_post_enabled":                    true,
    "responsive_web_profile_redirect_enabled":                                 true,
    "rweb_tipjar_consumption_enabled":                                         true,
    "verified_phone_label_enabled":                                            false,
    "creator_subscriptions_tweet_preview_api_enabled":                         true,
    "responsive_web_graphql_timeline_navigation_enabled":                      true,
    "responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
    "premium_content_api_read_enabled":                                        false,
    "communities_web_enable_tweet_community_results_fetch":                    true,
    "c9s_tweet_anatomy_moderator_badge_enabled":                               true,
    "responsive_web_grok_analyze_button_fetch_trends_enabled":                 false,
    "responsive_web_grok_analyze_post_followups_enabled":                      false,
    "responsive_web_jetfuel_frame":                                            true,
    "responsive_web_grok_share_attachment_enabled":                            true,
    "responsive_web_grok_annotations_enabled":                                 true,
    "articles_preview_enabled":                                                true,
    "responsive_web_edit_tweet_api_enabled":                                   true,
    "graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
    "view_counts_everywhere_api_enabled":                                      true,
    "longform_notetweets_consumption_enabled":                                 true,
    "responsive_web_twitter_article_tweet_consumption_enabled":                true,
    "tweet_awards_web_tipping_enabled":                                        false,
    "responsive_web_grok_show_grok_translated_post":                           false,
    "responsive_web_grok_analysis_button_from_backend":                        true,
    "creator_subscriptions_quote_tweet_preview_enabled":                       false,
    "freedom_of_speech_not_reach_fetch_enabled":                               true,
    "standardized_nudges_misinfo":                                             true,
    "tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
    "longform_notetweets_rich_text_read_enabled":                              true,
    "longform_notetweets_inline_media_enabled":                                true,
    "responsive_web_grok_image_annotation_enabled":                            true,
    "responsive_web_grok_imagine_annotation_enabled":                          true,
    "responsive_web_grok_community_note_auto_translation_is_enabled":          false,
    "responsive_web_enhance_cards_enabled":                                    false,
    "responsive_web_graphql_exclude_directive_enabled":                        true,
    "rweb_video_timestamps_enabled":                                           true,
    "blue_business_profile_image_shape_enabled":                               true,
    "responsive_web_text_conversations_enabled":                               false,
    "tweetypie_unmention_optimization_enabled":                                true,
    "vibe_api_enabled":                                                        true,
    "responsive_web_twitter_blue_verified_badge_is_enabled":                   true,
    "interactive_text_enabled":                                                true,
    "longform_notetweets_richtext_consumption_enabled":                        true,
    "responsive_web_media_download_video_enabled":                             false,
  }
}

func bookmarksFeatures() map[string]interface{} {
  features := timelineFeatures()
  features["graphql_timeline_v2_bookmark_timeline"] = true
  return features
}

func userTweetsFieldToggles() map[string]interface{} {
  return map[string]interface{}{
    "withArticlePlainText":           false,
    "withArticleRichContentState":    true,
    "withAuxiliaryUserLabels":        false,
    "withPayments":                   false,
    "withGrokAnalyze":                false,
    "withDisallowedReplyControls":    false,
  }
}

func buildTimelineUrl(
  apiBase string,
  queryID string,
  operation string,
  variables map[string]interface{},
  features map[string]interface{},
  fieldToggles map[string]interface{},
) string {
  q := url.Values{}
  b1, _ := json.Marshal(variables)
  b2, _ := json.Marshal(features)
  q.Add("variables", string(b1))
  q.Add("features", string(b2))
  if fieldToggles != nil {
    b3, _ := json.Marshal(fieldToggles)
    q.Add("fieldToggles", string(b3))
  }
  return fmt.Sprintf("%v/%v/%v?%v", apiBase, queryID, operation, q.Encode())
}

func BuildLikesUrl(apiBase string, queryID string, userID string, cursor string) string {
  variables := map[string]interface{}{
    "userId":                 userID,
    "count":                  20,
    "includePromotedContent": false,
    "withClientEventToken":   false,
    "withBirdwatchNotes":     false,
    "withVoice":              true,
  }
  if cursor != "" {
    variables["cursor"] = cursor
  }
  return buildTimelineUrl(apiBase, queryID, "Likes", variables, timelineFeatures(), nil)
}

func BuildBookmarksUrl(apiBase string, queryID string, cursor string) string {
  variables := map[string]interface{}{
    "count":                     20,
    "includePromotedContent":    false,
    "withDownvotePerspective":   false,
    "withReactionsMetadata":     false,
    "withReactionsPerspective":  false,
  }
  if cursor != "" {
    variables["cursor"] = cursor
  }
  return buildTimelineUrl(apiBase, queryID, "Bookmarks", variables, bookmarksFeatures(), nil)
}

func BuildBookmarkFolderUrl(apiBase string, queryID string, folderID string, cursor string) string {
  variables := map[string]interface{}{
    "bookmark_collection_id": folderID,
    "count":                  20,
    "includePromotedContent": false,
  }
  if cursor != "" {
    variables["cursor"] = cursor
  }
  return buildTimelineUrl(apiBase, queryID, "BookmarkFolderTimeline", variables, bookmarksFeatures(), nil)
}

func BuildUserTweetsUrl(apiBase string, queryID string, userID string, cursor string) string {
  variables := map[string]interface{}{
    "userId":                                 userID,
    "count":                                  20,
    "includePromotedContent":                 true,
    "withQuickPromoteEligibilityTweetFields": true,
    "withVoice":                              true,
    "withV2Timeline":                         true,
  }
  if cursor != "" {
    variables["cursor"] = cursor
  }
  return buildTimelineUrl(apiBase, queryID, "UserTweets", variables, timelineFeatures(), userTweetsFieldToggles())
}

func BuildUserTweetsAndRepliesUrl(apiBase string, queryID string, userID string, cursor string) string {
  variables := map[string]interface{}{
    "userId":                 userID,
    "count":                  20,
    "includePromotedContent": true,
    "withCommunity":          false,
    "withVoice":              true,
    "withV2Timeline":         true,
  }
  if cursor != "" {
    variables["cursor"] = cursor
  }
  return buildTimelineUrl(apiBase, queryID, "UserTweetsAndReplies", variables, timelineFeatures(), userTweetsFieldToggles())
}

func BuildHomeTimelineUrl(apiBase string, queryID string, cursor string) string {
  variables := map[string]interface{}{
    "count":                  20,
    "seenTweetIds":           []string{},
    "includePromotedContent": false,
  }
  if cursor != "" {
    variables["cursor"] = cursor
  }
  return buildTimelineUrl(apiBase, queryID, "HomeLatestTimeline", variables, timelineFeatures(), nil)
}

func BuildTweetDetailUrl(apiBase string, queryID string, tweetID string) string {
  variables := map[string]interface{}{
    "focalTweetId":           tweetID,
    "withCommunity":          true,
    "withVoice":              true,
    "withBirdwatchNotes":     true,
    "includePromotedContent": true,
  }
  return buildTimelineUrl(apiBase, queryID, "TweetDetail", variables, timelineFeatures(), nil)
}

type TimelineEntry struct {
  Tweet     gjson.Result
  SortIndex string
}

func parseTimelineContainer(container gjson.Result) (entries []*TimelineEntry, cursor string) {
  container.Get("instructions").ForEach(func(_, s gjson.Result) bool {
    if s.Get("type").Str != "TimelineAddEntries" {
      return true
    }
    s.Get("entries").ForEach(func(_, e gjson.Result) bool {
      entryID := e.Get("entryId").Str
      if strings.HasPrefix(entryID, "tweet-") {
        result := e.Get("content.itemContent.tweet_results.result")
        if result.Exists() {
          entries = append(entries, &TimelineEntry{
            Tweet:     result,
            SortIndex: e.Get("sortIndex").Str,
          })
        }
      } else if strings.HasPrefix(entryID, "cursor-bottom-") {
        cursor = e.Get("content.value").Str
      }
      return true
    })
    return true
  })
  return
}

func ParseLikesResponse(body []byte) ([]*TimelineEntry, string) {
  return parseTimelineContainer(gjson.GetBytes(body, "data.user.result.timeline.timeline"))
}

func ParseBookmarksResponse(body []byte) ([]*TimelineEntry, string) {
  return parseTimelineContainer(gjson.GetBytes(body, "data.bookmark_timeline_v2.timeline"))
}

func ParseBookmarkFolderResponse(body []byte) ([]*TimelineEntry, string) {
  return parseTimelineContainer(gjson.GetBytes(body, "data.bookmark_collection_timeline.timeline"))
}

func ParseUserTweetsResponse(body []byte) ([]*TimelineEntry, string) {
  // timeline_v2 on older deployments, timeline on newer ones.
  container := gjson.GetBytes(body, "data.user.result.timeline_v2.timeline")
  if !container.Exists() {
    container = gjson.GetBytes(body, "data.user.result.timeline.timeline")
  }
  return parseTimelineContainer(container)
}

func ParseHomeTimelineResponse(body []byte) ([]*TimelineEntry, string) {
  return parseTimelineContainer(gjson.GetBytes(body, "data.home.home_timeline_urt"))
}

func ParseTweetDetailResponse(body []byte) (tweets []gjson.Result) {
  conversation := gjson.GetBytes(body, "data.threaded_conversation_with_injections_v2")
  conversation.Get("instructions").ForEach(func(_, s gjson.Result) bool {
    if s.Get("type").Str != "TimelineAddEntries" {
      return true
    }
    s.Get("entries").ForEach(func(_, e gjson.Result) bool {
      entryID := e.Get("entryId").Str
      if strings.HasPrefix(entryID, "tweet-") {
        result := e.Get("content.itemContent.tweet_results.result")
        if result.Exists() {
          tweets = append(tweets, result)
        }
      } else if strings.HasPrefix(entryID, "conversationthread-") {
        e.Get("content.items").ForEach(func(_, item gjson.Result) bool {
          result := item.Get("item.itemContent.tweet_results.result")
          if result.Exists() {
            tweets = append(tweets, result)
          }
          return true
        })
      }
      return true
    })
    return true
  })
  return
}
