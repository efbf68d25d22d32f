package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"

  "github.com/tfriedel/tweethoarder/api"
  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
)

type StatsHandler struct {
  ApiContext *common.ApiContext
  Response   *api.ResponseHandler
  Repository *repositories.TweetsRepository
}

func NewStatsRouter(apiContext *common.ApiContext) http.Handler {
  h := StatsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/", h.Show)
  return r
}

func (h *StatsHandler) Show(
  w http.ResponseWriter,
  r *http.Request,
) {
  h.ApiContext.Mux.Lock()
  defer h.ApiContext.Mux.Unlock()

  h.Response = &api.ResponseHandler{
    Writer: w,
  }

  collections := map[string]int64{}
  for _, collectionType := range []string{
    config.COLLECTION_LIKE,
    config.COLLECTION_BOOKMARK,
    config.COLLECTION_TWEET,
    config.COLLECTION_REPOST,
    config.COLLECTION_REPLY,
    config.COLLECTION_FEED,
  } {
    collections[collectionType] = h.Repository.Count(collectionType)
  }

  h.Response.Json(map[string]interface{}{
    "tweets":      h.Repository.Total(),
    "collections": collections,
  })
}
