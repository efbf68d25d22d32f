package repositories

import (
  "encoding/json"
  "errors"
  "time"

  "github.com/nats-io/nats.go"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/models"
)

type TweetsRepository struct {
  Db   *gorm.DB
  Nats *nats.Conn
}

var tweetMutableColumns = []string{
  "text",
  "author_id",
  "author_username",
  "author_display_name",
  "author_avatar_url",
  "posted_at",
  "conversation_id",
  "in_reply_to_tweet_id",
  "in_reply_to_user_id",
  "quoted_tweet_id",
  "is_retweet",
  "retweeted_tweet_id",
  "retweeter_username",
  "reply_count",
  "retweet_count",
  "like_count",
  "quote_count",
  "urls",
  "media",
  "hashtags",
  "mentions",
  "raw",
  "last_updated_at",
}

func (r *TweetsRepository) Save(tweet *models.Tweet) (err error) {
  now := time.Now()
  tweet.FirstSeenAt = now
  tweet.LastUpdatedAt = now
  fresh := !r.IsExists(tweet.ID)
  err = r.Db.Clauses(clause.OnConflict{
    Columns:   []clause.Column{{Name: "id"}},
    DoUpdates: clause.AssignmentColumns(tweetMutableColumns),
  }).Create(&tweet).Error
  if err == nil && fresh && r.Nats != nil {
    data, _ := json.Marshal(map[string]interface{}{
      "id": tweet.ID,
    })
    r.Nats.Publish(config.NATS_TWEETS_CREATE, data)
    r.Nats.Flush()
  }
  return
}

func (r *TweetsRepository) Find(id string) (entity *models.Tweet, err error) {
  err = r.Db.First(&entity, "id=?", id).Error
  return
}

func (r *TweetsRepository) IsExists(id string) bool {
  var entity *models.Tweet
  result := r.Db.Where("id", id).Take(&entity)
  return !errors.Is(result.Error, gorm.ErrRecordNotFound)
}

func (r *TweetsRepository) AddToCollection(
  tweetID string,
  collectionType string,
  sortIndex string,
  folder string,
  threadID string,
) (err error) {
  now := time.Now()
  entity := &models.Collection{
    TweetID:        tweetID,
    CollectionType: collectionType,
    BookmarkFolder: folder,
    ThreadID:       threadID,
    SortIndex:      sortIndex,
    AddedAt:        now,
    SyncedAt:       now,
  }
  err = r.Db.Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "tweet_id"}, {Name: "collection_type"}},
    DoUpdates: clause.AssignmentColumns([]string{
      "bookmark_folder",
      "thread_id",
      "sort_index",
      "synced_at",
    }),
  }).Create(&entity).Error
  return
}

func (r *TweetsRepository) IsInCollection(tweetID string, collectionType string) bool {
  var entity *models.Collection
  result := r.Db.Where("tweet_id=? AND collection_type=?", tweetID, collectionType).Take(&entity)
  return !errors.Is(result.Error, gorm.ErrRecordNotFound)
}

func (r *TweetsRepository) MinSortIndex(collectionType string) string {
  var entity *models.Collection
  result := r.Db.Where("collection_type=? AND sort_index<>''", collectionType).
    Order("LENGTH(sort_index) ASC, sort_index ASC").
    Take(&entity)
  if result.Error != nil {
    return ""
  }
  return entity.SortIndex
}

func (r *TweetsRepository) Collection(collectionType string, current int, pageSize int) []*models.Tweet {
  var tweets []*models.Tweet
  query := r.Db.Model(&models.Tweet{}).
    Joins("JOIN collections ON collections.tweet_id=tweets.id").
    Where("collections.collection_type=?", collectionType).
    Order("LENGTH(collections.sort_index) DESC, collections.sort_index DESC")
  if pageSize > 0 {
    query = query.Offset((current - 1) * pageSize).Limit(pageSize)
  }
  query.Find(&tweets)
  return tweets
}

func (r *TweetsRepository) Count(collectionType string) int64 {
  var total int64
  r.Db.Model(&models.Collection{}).Where("collection_type", collectionType).Count(&total)
  return total
}

func (r *TweetsRepository) Total() int64 {
  var total int64
  r.Db.Model(&models.Tweet{}).Count(&total)
  return total
}

func (r *TweetsRepository) SaveThreadContext(childID string, parentID string, depth int) (err error) {
  entity := &models.ThreadContext{
    ChildTweetID:  childID,
    ParentTweetID: parentID,
    Depth:         depth,
    FetchedAt:     time.Now(),
  }
  err = r.Db.Clauses(clause.OnConflict{
    Columns:   []clause.Column{{Name: "child_tweet_id"}, {Name: "parent_tweet_id"}},
    DoUpdates: clause.AssignmentColumns([]string{"depth", "fetched_at"}),
  }).Create(&entity).Error
  return
}
