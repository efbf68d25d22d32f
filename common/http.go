package common

import (
  "net"
  "net/http"
  "time"
)

func NewHttpClient(timeout time.Duration) *http.Client {
  tr := &http.Transport{
    DisableKeepAlives: true,
  }
  if proxy := GetEnvString("SCRAPER_PROXY"); proxy != "" {
    tr.DialContext = (&ProxySession{
      Proxy: proxy,
    }).DialContext
  } else {
    tr.DialContext = (&net.Dialer{}).DialContext
  }
  return &http.Client{
    Transport: tr,
    Timeout:   timeout,
  }
}
