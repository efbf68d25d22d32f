package sync

import (
  "math/big"

  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
)

var one = big.NewInt(1)

// SortIndexGenerator hands out strictly decreasing positions so that items
// keep their relative order across sync sessions even when the upstream
// pagination token is not comparable between sessions.
type SortIndexGenerator struct {
  counter *big.Int
}

func NewSortIndexGenerator(initial string) *SortIndexGenerator {
  if initial == "" {
    initial = config.INITIAL_SORT_INDEX
  }
  counter, ok := new(big.Int).SetString(initial, 10)
  if !ok {
    counter, _ = new(big.Int).SetString(config.INITIAL_SORT_INDEX, 10)
  }
  return &SortIndexGenerator{
    counter: counter,
  }
}

func (g *SortIndexGenerator) Next() string {
  value := g.counter.String()
  g.counter.Sub(g.counter, one)
  return value
}

func (g *SortIndexGenerator) Current() string {
  return g.counter.String()
}

// Resolution priority: checkpoint counter (mid-sync resume), then one below
// the oldest stored position, then the fixed top-of-range constant.
func SortIndexFromCheckpointOrDb(
  checkpointsRepository *repositories.CheckpointsRepository,
  tweetsRepository *repositories.TweetsRepository,
  collectionType string,
) *SortIndexGenerator {
  checkpoint, _ := checkpointsRepository.Load(collectionType)
  if checkpoint != nil && checkpoint.SortIndexCounter != "" {
    return NewSortIndexGenerator(checkpoint.SortIndexCounter)
  }

  minIndex := tweetsRepository.MinSortIndex(collectionType)
  if minIndex != "" {
    counter, ok := new(big.Int).SetString(minIndex, 10)
    if ok {
      return &SortIndexGenerator{
        counter: counter.Sub(counter, one),
      }
    }
  }

  return NewSortIndexGenerator("")
}
