package v1

import (
  "net/http"
  "strconv"

  "github.com/go-chi/chi/v5"

  "github.com/tfriedel/tweethoarder/api"
  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
  "github.com/tfriedel/tweethoarder/repositories/exports"
)

type TweetsHandler struct {
  ApiContext *common.ApiContext
  Response   *api.ResponseHandler
  Repository *repositories.TweetsRepository
}

func NewTweetsRouter(apiContext *common.ApiContext) http.Handler {
  h := TweetsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/{collectionType}", h.Listings)
  return r
}

func validCollectionType(collectionType string) bool {
  switch collectionType {
  case config.COLLECTION_LIKE,
    config.COLLECTION_BOOKMARK,
    config.COLLECTION_TWEET,
    config.COLLECTION_REPOST,
    config.COLLECTION_REPLY,
    config.COLLECTION_FEED:
    return true
  }
  return false
}

func (h *TweetsHandler) Listings(
  w http.ResponseWriter,
  r *http.Request,
) {
  h.ApiContext.Mux.Lock()
  defer h.ApiContext.Mux.Unlock()

  h.Response = &api.ResponseHandler{
    Writer: w,
  }

  collectionType := chi.URLParam(r, "collectionType")
  if !validCollectionType(collectionType) {
    h.Response.Error(http.StatusNotFound, 1004, "collection not valid")
    return
  }

  current := 1
  if r.URL.Query().Has("current") {
    current, _ = strconv.Atoi(r.URL.Query().Get("current"))
  }
  if current < 1 {
    h.Response.Error(http.StatusForbidden, 1004, "current not valid")
    return
  }

  pageSize := 50
  if r.URL.Query().Has("page_size") {
    pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
  }
  if pageSize < 1 || pageSize > 100 {
    h.Response.Error(http.StatusForbidden, 1004, "page size not valid")
    return
  }

  var items []*exports.ExportTweet
  for _, tweet := range h.Repository.Collection(collectionType, current, pageSize) {
    items = append(items, exports.NewExportTweet(tweet))
  }
  if items == nil {
    items = []*exports.ExportTweet{}
  }

  h.Response.Pagenate(items, h.Repository.Count(collectionType), current, pageSize)
}
