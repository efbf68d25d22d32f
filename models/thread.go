package models

import (
  "time"
)

type ThreadContext struct {
  ChildTweetID  string `gorm:"size:20;primaryKey"`
  ParentTweetID string `gorm:"size:20;primaryKey"`
  Depth         int    `gorm:"not null"`
  FetchedAt     time.Time `gorm:"not null"`
}

func (m *ThreadContext) TableName() string {
  return "thread_contexts"
}
