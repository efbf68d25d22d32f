package models

import (
  "time"

  "gorm.io/datatypes"
)

type Tweet struct {
  ID                string `gorm:"size:20;primaryKey"`
  Text              string `gorm:"size:5000;not null"`
  AuthorID          string `gorm:"size:20;not null;index:idx_tweets_author"`
  AuthorUsername    string `gorm:"size:50;not null"`
  AuthorDisplayName string `gorm:"size:100"`
  AuthorAvatarUrl   string `gorm:"size:255"`
  PostedAt          string `gorm:"size:35;not null;index:idx_tweets_posted_at"`
  ConversationID    string `gorm:"size:20;index:idx_tweets_conversation"`
  InReplyToTweetID  string `gorm:"size:20"`
  InReplyToUserID   string `gorm:"size:20"`
  QuotedTweetID     string `gorm:"size:20"`
  IsRetweet         bool   `gorm:"not null"`
  RetweetedTweetID  string `gorm:"size:20"`
  RetweeterUsername string `gorm:"size:50"`
  ReplyCount        int    `gorm:"not null"`
  RetweetCount      int    `gorm:"not null"`
  LikeCount         int    `gorm:"not null"`
  QuoteCount        int    `gorm:"not null"`
  Urls              datatypes.JSON
  Media             datatypes.JSON
  Hashtags          datatypes.JSON
  Mentions          datatypes.JSON
  Raw               datatypes.JSON
  FirstSeenAt       time.Time `gorm:"not null"`
  LastUpdatedAt     time.Time `gorm:"not null"`
}

func (m *Tweet) TableName() string {
  return "tweets"
}
