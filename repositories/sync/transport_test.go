package sync

import (
  "context"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestTransportOk(t *testing.T) {
  requests := 0
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    requests++
    assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
    w.Write([]byte(`{"data":{}}`))
  }))
  defer server.Close()

  transport := &Transport{
    Client: server.Client(),
    Headers: map[string]string{
      "User-Agent": "test-agent",
    },
  }
  body, err := transport.Fetch(context.Background(), server.URL, nil, nil)
  require.NoError(t, err)
  assert.Equal(t, `{"data":{}}`, string(body))
  assert.Equal(t, 1, requests)
}

func TestTransportStaleEndpointRefresh(t *testing.T) {
  requests := 0
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    requests++
    if r.URL.Path == "/stale" {
      w.WriteHeader(http.StatusNotFound)
      return
    }
    w.Write([]byte("ok"))
  }))
  defer server.Close()

  refreshes := 0
  refresh := func() (string, error) {
    refreshes++
    return "fresh-id", nil
  }
  rebuild := func(queryID string) string {
    assert.Equal(t, "fresh-id", queryID)
    return server.URL + "/fresh"
  }

  transport := &Transport{
    Client: server.Client(),
  }
  body, err := transport.Fetch(context.Background(), server.URL+"/stale", refresh, rebuild)
  require.NoError(t, err)
  assert.Equal(t, "ok", string(body))
  assert.Equal(t, 2, requests)
  assert.Equal(t, 1, refreshes)
}

func TestTransportStaleEndpointSingleRefresh(t *testing.T) {
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusNotFound)
  }))
  defer server.Close()

  refreshes := 0
  refresh := func() (string, error) {
    refreshes++
    return "fresh-id", nil
  }
  rebuild := func(queryID string) string {
    return server.URL + "/still-stale"
  }

  transport := &Transport{
    Client: server.Client(),
  }
  _, err := transport.Fetch(context.Background(), server.URL+"/stale", refresh, rebuild)
  assert.Error(t, err)
  assert.Equal(t, 1, refreshes)
}

func TestTransportRateLimitedBackoff(t *testing.T) {
  requests := 0
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    requests++
    if requests < 3 {
      w.WriteHeader(http.StatusTooManyRequests)
      return
    }
    w.Write([]byte("ok"))
  }))
  defer server.Close()

  transport := &Transport{
    Client:    server.Client(),
    BaseDelay: time.Millisecond,
  }
  body, err := transport.Fetch(context.Background(), server.URL, nil, nil)
  require.NoError(t, err)
  assert.Equal(t, "ok", string(body))
  assert.Equal(t, 3, requests)
}

func TestTransportRateLimitedExhausted(t *testing.T) {
  requests := 0
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    requests++
    w.WriteHeader(http.StatusTooManyRequests)
  }))
  defer server.Close()

  transport := &Transport{
    Client:     server.Client(),
    MaxRetries: 3,
    BaseDelay:  time.Millisecond,
  }
  _, err := transport.Fetch(context.Background(), server.URL, nil, nil)
  require.Error(t, err)
  assert.Contains(t, err.Error(), "retries exhausted")
  assert.Equal(t, 3, requests)
}

func TestTransportFatalStatus(t *testing.T) {
  requests := 0
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    requests++
    w.WriteHeader(http.StatusInternalServerError)
  }))
  defer server.Close()

  transport := &Transport{
    Client: server.Client(),
  }
  _, err := transport.Fetch(context.Background(), server.URL, nil, nil)
  require.Error(t, err)
  assert.Contains(t, err.Error(), "code[500]")
  assert.Equal(t, 1, requests)
}

func TestTransportContextCancelled(t *testing.T) {
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusTooManyRequests)
  }))
  defer server.Close()

  ctx, cancel := context.WithCancel(context.Background())
  cancel()

  transport := &Transport{
    Client:    server.Client(),
    BaseDelay: time.Hour,
  }
  _, err := transport.Fetch(ctx, server.URL, nil, nil)
  assert.ErrorIs(t, err, context.Canceled)
}
