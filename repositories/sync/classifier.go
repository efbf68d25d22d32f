package sync

import (
  "html"
  "time"

  "github.com/tidwall/gjson"
  "gorm.io/datatypes"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/models"
)

type UrlInfo struct {
  Url         string `json:"url"`
  ExpandedUrl string `json:"expanded_url"`
  DisplayUrl  string `json:"display_url"`
}

type MediaItemInfo struct {
  Type        string `json:"type"`
  MediaUrl    string `json:"media_url_https"`
  DisplayUrl  string `json:"display_url"`
  ExpandedUrl string `json:"expanded_url"`
  Width       int    `json:"width"`
  Height      int    `json:"height"`
  VideoUrl    string `json:"video_url,omitempty"`
}

type HashtagInfo struct {
  Text string `json:"text"`
}

type MentionInfo struct {
  ScreenName string `json:"screen_name"`
  UserID     string `json:"id_str"`
}

func unwrapTweet(s gjson.Result) gjson.Result {
  if s.Get("__typename").Str == "TweetWithVisibilityResults" {
    return s.Get("tweet")
  }
  return s
}

func IsRepost(raw gjson.Result) bool {
  return unwrapTweet(raw).Get("legacy.retweeted_status_result").Exists()
}

func IsReply(raw gjson.Result) bool {
  return unwrapTweet(raw).Get("legacy.in_reply_to_status_id_str").Str != ""
}

func IsSelfThread(tweet *models.Tweet) bool {
  return tweet.InReplyToUserID != "" && tweet.InReplyToUserID == tweet.AuthorID
}

func convertTwitterDate(value string) string {
  if value == "" {
    return ""
  }
  parsed, err := time.Parse(time.RubyDate, value)
  if err != nil {
    return ""
  }
  return parsed.Format(time.RFC3339)
}

func coalesce(values ...string) string {
  for _, value := range values {
    if value != "" {
      return value
    }
  }
  return ""
}

func extractUrls(entities gjson.Result) []*UrlInfo {
  var urls []*UrlInfo
  entities.Get("urls").ForEach(func(_, s gjson.Result) bool {
    urls = append(urls, &UrlInfo{
      Url:         s.Get("url").Str,
      ExpandedUrl: s.Get("expanded_url").Str,
      DisplayUrl:  s.Get("display_url").Str,
    })
    return true
  })
  return urls
}

func extractHashtags(entities gjson.Result) []*HashtagInfo {
  var hashtags []*HashtagInfo
  entities.Get("hashtags").ForEach(func(_, s gjson.Result) bool {
    hashtags = append(hashtags, &HashtagInfo{
      Text: s.Get("text").Str,
    })
    return true
  })
  return hashtags
}

func extractMentions(entities gjson.Result) []*MentionInfo {
  var mentions []*MentionInfo
  entities.Get("user_mentions").ForEach(func(_, s gjson.Result) bool {
    mentions = append(mentions, &MentionInfo{
      ScreenName: s.Get("screen_name").Str,
      UserID:     s.Get("id_str").Str,
    })
    return true
  })
  return mentions
}

func extractMedia(extendedEntities gjson.Result) []*MediaItemInfo {
  var media []*MediaItemInfo
  extendedEntities.Get("media").ForEach(func(_, s gjson.Result) bool {
    item := &MediaItemInfo{
      Type:        s.Get("type").Str,
      MediaUrl:    s.Get("media_url_https").Str,
      DisplayUrl:  s.Get("display_url").Str,
      ExpandedUrl: s.Get("expanded_url").Str,
      Width:       int(s.Get("original_info.width").Int()),
      Height:      int(s.Get("original_info.height").Int()),
    }
    // Keep only the best mp4 variant for videos.
    bitrate := int64(-1)
    s.Get("video_info.variants").ForEach(func(_, v gjson.Result) bool {
      if v.Get("content_type").Str != "video/mp4" {
        return true
      }
      if v.Get("bitrate").Int() > bitrate {
        bitrate = v.Get("bitrate").Int()
        item.VideoUrl = v.Get("url").Str
      }
      return true
    })
    media = append(media, item)
    return true
  })
  return media
}

func extractAuthor(userResult gjson.Result) (id string, username string, displayName string, avatarUrl string) {
  id = userResult.Get("rest_id").Str
  username = coalesce(
    userResult.Get("legacy.screen_name").Str,
    userResult.Get("core.screen_name").Str,
  )
  displayName = coalesce(
    userResult.Get("legacy.name").Str,
    userResult.Get("core.name").Str,
  )
  avatarUrl = coalesce(
    userResult.Get("avatar.image_url").Str,
    userResult.Get("legacy.profile_image_url_https").Str,
  )
  return
}

// ExtractTweet normalizes one raw timeline item. Returns nil when a required
// field (id, author, text, created date) is missing; callers count the skip
// and keep going.
func ExtractTweet(raw gjson.Result, storeRaw bool) *models.Tweet {
  s := unwrapTweet(raw)
  legacy := s.Get("legacy")
  userResult := s.Get("core.user_results.result")

  tweetID := s.Get("rest_id").Str
  postedAt := convertTwitterDate(legacy.Get("created_at").Str)

  isRetweet := legacy.Get("retweeted_status_result").Exists()
  retweet := unwrapTweet(legacy.Get("retweeted_status_result.result"))

  var text string
  var authorID, authorUsername, authorDisplayName, authorAvatarUrl string
  var retweeterUsername string
  var entities, extendedEntities, stats gjson.Result

  if isRetweet {
    rtLegacy := retweet.Get("legacy")
    // Reposts carry a truncated "RT @..." text; prefer the original tweet.
    text = coalesce(
      retweet.Get("note_tweet.note_tweet_results.result.text").Str,
      rtLegacy.Get("full_text").Str,
      legacy.Get("full_text").Str,
    )
    entities = rtLegacy.Get("entities")
    if !entities.Exists() {
      entities = legacy.Get("entities")
    }
    extendedEntities = rtLegacy.Get("extended_entities")
    if !extendedEntities.Exists() {
      extendedEntities = legacy.Get("extended_entities")
    }
    rtID, rtUsername, rtDisplayName, rtAvatarUrl := extractAuthor(retweet.Get("core.user_results.result"))
    selfID, selfUsername, selfDisplayName, selfAvatarUrl := extractAuthor(userResult)
    authorID = coalesce(rtID, selfID)
    authorUsername = coalesce(rtUsername, selfUsername)
    authorDisplayName = coalesce(rtDisplayName, selfDisplayName)
    authorAvatarUrl = coalesce(rtAvatarUrl, selfAvatarUrl)
    retweeterUsername = selfUsername
    stats = rtLegacy
  } else {
    text = coalesce(
      s.Get("note_tweet.note_tweet_results.result.text").Str,
      legacy.Get("full_text").Str,
    )
    entities = legacy.Get("entities")
    extendedEntities = legacy.Get("extended_entities")
    authorID, authorUsername, authorDisplayName, authorAvatarUrl = extractAuthor(userResult)
    stats = legacy
  }

  text = html.UnescapeString(text)

  if tweetID == "" || text == "" || authorID == "" || authorUsername == "" || postedAt == "" {
    return nil
  }

  quotedTweetID := coalesce(
    unwrapTweet(s.Get("quoted_status_result.result")).Get("rest_id").Str,
    legacy.Get("quoted_status_id_str").Str,
  )
  if isRetweet && quotedTweetID == "" {
    quotedTweetID = coalesce(
      unwrapTweet(retweet.Get("quoted_status_result.result")).Get("rest_id").Str,
      retweet.Get("legacy.quoted_status_id_str").Str,
    )
  }

  tweet := &models.Tweet{
    ID:                tweetID,
    Text:              text,
    AuthorID:          authorID,
    AuthorUsername:    authorUsername,
    AuthorDisplayName: authorDisplayName,
    AuthorAvatarUrl:   authorAvatarUrl,
    PostedAt:          postedAt,
    ConversationID:    legacy.Get("conversation_id_str").Str,
    InReplyToTweetID:  legacy.Get("in_reply_to_status_id_str").Str,
    InReplyToUserID:   legacy.Get("in_reply_to_user_id_str").Str,
    QuotedTweetID:     quotedTweetID,
    IsRetweet:         isRetweet,
    RetweeterUsername: retweeterUsername,
    ReplyCount:        int(stats.Get("reply_count").Int()),
    RetweetCount:      int(stats.Get("retweet_count").Int()),
    LikeCount:         int(stats.Get("favorite_count").Int()),
    QuoteCount:        int(stats.Get("quote_count").Int()),
  }
  if isRetweet {
    tweet.RetweetedTweetID = retweet.Get("rest_id").Str
  }
  if urls := extractUrls(entities); urls != nil {
    tweet.Urls = common.JSONBlob(urls)
  }
  if media := extractMedia(extendedEntities); media != nil {
    tweet.Media = common.JSONBlob(media)
  }
  if hashtags := extractHashtags(entities); hashtags != nil {
    tweet.Hashtags = common.JSONBlob(hashtags)
  }
  if mentions := extractMentions(entities); mentions != nil {
    tweet.Mentions = common.JSONBlob(mentions)
  }
  if storeRaw {
    tweet.Raw = datatypes.JSON(raw.Raw)
  }

  return tweet
}

// ExtractQuoted returns the embedded quoted tweet, looking through a repost
// wrapper when needed.
func ExtractQuoted(raw gjson.Result, storeRaw bool) *models.Tweet {
  s := unwrapTweet(raw)

  quoted := s.Get("quoted_status_result.result")
  if unwrapTweet(quoted).Get("rest_id").Str != "" {
    return ExtractTweet(quoted, storeRaw)
  }

  retweet := unwrapTweet(s.Get("legacy.retweeted_status_result.result"))
  if retweet.Exists() {
    quoted = retweet.Get("quoted_status_result.result")
    if unwrapTweet(quoted).Get("rest_id").Str != "" {
      return ExtractTweet(quoted, storeRaw)
    }
  }

  return nil
}
