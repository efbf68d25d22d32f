package sync

import (
  "context"
  "errors"
  "fmt"
  "io"
  "net/http"
  "time"
)

type RefreshFunc func() (string, error)

type RebuildFunc func(queryID string) string

type pageStatus int

const (
  pageOk pageStatus = iota
  pageRateLimited
  pageStaleEndpoint
  pageFatal
)

func classifyStatus(code int) pageStatus {
  switch code {
  case http.StatusOK:
    return pageOk
  case http.StatusTooManyRequests:
    return pageRateLimited
  case http.StatusNotFound:
    return pageStaleEndpoint
  default:
    return pageFatal
  }
}

// Transport executes one paginated GET with bounded 429 backoff and a single
// 404 query-id refresh per call. Retry state lives only inside Fetch.
type Transport struct {
  Client     *http.Client
  Headers    map[string]string
  MaxRetries int
  BaseDelay  time.Duration
}

func (t *Transport) Fetch(
  ctx context.Context,
  url string,
  refresh RefreshFunc,
  rebuild RebuildFunc,
) (body []byte, err error) {
  maxRetries := t.MaxRetries
  if maxRetries == 0 {
    maxRetries = 5
  }
  baseDelay := t.BaseDelay
  if baseDelay == 0 {
    baseDelay = time.Second
  }

  currentUrl := url
  refreshed := false
  attempt := 0

  for attempt < maxRetries {
    req, reqErr := http.NewRequestWithContext(ctx, "GET", currentUrl, nil)
    if reqErr != nil {
      err = reqErr
      return
    }
    for key, val := range t.Headers {
      req.Header.Set(key, val)
    }
    resp, respErr := t.Client.Do(req)
    if respErr != nil {
      err = respErr
      return
    }
    body, _ = io.ReadAll(resp.Body)
    resp.Body.Close()

    switch classifyStatus(resp.StatusCode) {
    case pageOk:
      return body, nil
    case pageStaleEndpoint:
      if refresh == nil || rebuild == nil || refreshed {
        err = errors.New(
          fmt.Sprintf(
            "request error: status[%s] code[%d]",
            resp.Status,
            resp.StatusCode,
          ),
        )
        return nil, err
      }
      queryID, refreshErr := refresh()
      if refreshErr != nil {
        return nil, refreshErr
      }
      currentUrl = rebuild(queryID)
      refreshed = true
      attempt = 0
    case pageRateLimited:
      if attempt >= maxRetries-1 {
        return nil, errors.New("rate limited: retries exhausted")
      }
      delay := baseDelay * time.Duration(1<<attempt)
      select {
      case <-time.After(delay):
      case <-ctx.Done():
        return nil, ctx.Err()
      }
      attempt++
    default:
      return nil, errors.New(
        fmt.Sprintf(
          "request error: status[%s] code[%d]",
          resp.Status,
          resp.StatusCode,
        ),
      )
    }
  }

  return nil, errors.New("rate limited: retries exhausted")
}
