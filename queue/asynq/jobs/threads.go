package jobs

import (
  "encoding/json"

  "github.com/hibiken/asynq"

  "github.com/tfriedel/tweethoarder/config"
)

type Threads struct{}

type FetchPayload struct {
  TweetID string
}

func (h *Threads) Fetch(tweetID string) (*asynq.Task, error) {
  payload, err := json.Marshal(FetchPayload{tweetID})
  if err != nil {
    return nil, err
  }
  return asynq.NewTask(config.ASYNQ_THREADS_FETCH, payload), nil
}
