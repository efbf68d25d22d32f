package models

import (
  "time"
)

type Collection struct {
  TweetID        string `gorm:"size:20;primaryKey"`
  CollectionType string `gorm:"size:20;primaryKey;index:idx_collections_type"`
  BookmarkFolder string `gorm:"size:100"`
  ThreadID       string `gorm:"size:20"`
  SortIndex      string `gorm:"size:40;index:idx_collections_sort"`
  AddedAt        time.Time `gorm:"not null;index:idx_collections_added"`
  SyncedAt       time.Time `gorm:"not null"`
}

func (m *Collection) TableName() string {
  return "collections"
}
