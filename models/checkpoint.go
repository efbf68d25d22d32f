package models

import (
  "time"
)

type Checkpoint struct {
  CollectionType   string `gorm:"size:20;primaryKey"`
  Cursor           string `gorm:"size:255"`
  LastTweetID      string `gorm:"size:20"`
  SortIndexCounter string `gorm:"size:40"`
  Status           string `gorm:"size:20;not null"`
  StartedAt        time.Time `gorm:"not null"`
  UpdatedAt        time.Time `gorm:"not null"`
}

func (m *Checkpoint) TableName() string {
  return "sync_checkpoints"
}
