package repositories

import (
  "errors"
  "time"

  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/tfriedel/tweethoarder/models"
)

type CheckpointsRepository struct {
  Db *gorm.DB
}

func (r *CheckpointsRepository) Save(
  collectionType string,
  cursor string,
  lastTweetID string,
  sortIndexCounter string,
) (err error) {
  entity := &models.Checkpoint{
    CollectionType:   collectionType,
    Cursor:           cursor,
    LastTweetID:      lastTweetID,
    SortIndexCounter: sortIndexCounter,
    Status:           "in_progress",
    StartedAt:        time.Now(),
  }
  err = r.Db.Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "collection_type"}},
    DoUpdates: clause.AssignmentColumns([]string{
      "cursor",
      "last_tweet_id",
      "sort_index_counter",
      "status",
      "updated_at",
    }),
  }).Create(&entity).Error
  return
}

func (r *CheckpointsRepository) Load(collectionType string) (entity *models.Checkpoint, err error) {
  err = r.Db.Where("collection_type", collectionType).Take(&entity).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return
}

func (r *CheckpointsRepository) Clear(collectionType string) (err error) {
  err = r.Db.Where("collection_type", collectionType).Delete(&models.Checkpoint{}).Error
  return
}
