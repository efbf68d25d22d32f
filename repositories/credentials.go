package repositories

import (
  "errors"
  "fmt"
  "strings"

  "github.com/tfriedel/tweethoarder/common"
)

type Credentials struct {
  Cookie      string
  Agent       string
  AccessToken string
  CsrfToken   string
  UserID      string
}

type CredentialsRepository struct{}

func (r *CredentialsRepository) Resolve() (credentials *Credentials, err error) {
  credentials = &Credentials{
    Cookie:      common.GetEnvString("SCRAPER_COOKIE"),
    Agent:       common.GetEnvString("SCRAPER_AGENT"),
    AccessToken: common.GetEnvString("SCRAPER_ACCESS_TOKEN"),
  }
  if credentials.Cookie == "" {
    err = errors.New("SCRAPER_COOKIE is empty")
    return
  }
  if credentials.AccessToken == "" {
    err = errors.New("SCRAPER_ACCESS_TOKEN is empty")
    return
  }

  for _, p := range strings.Split(credentials.Cookie, ";") {
    parts := strings.SplitN(p, "=", 2)
    if len(parts) != 2 {
      continue
    }
    name := strings.Trim(parts[0], " ")
    value := strings.Trim(parts[1], " ")
    if name == "ct0" {
      credentials.CsrfToken = value
    }
    if name == "twid" {
      credentials.UserID = strings.TrimPrefix(value, "u%3D")
    }
  }

  if credentials.CsrfToken == "" {
    err = errors.New("ct0 cookie not found")
    return
  }
  if credentials.UserID == "" {
    err = errors.New("twid cookie not found")
    return
  }

  return
}

func (c *Credentials) Headers() map[string]string {
  return map[string]string{
    "User-Agent":    c.Agent,
    "cookie":        c.Cookie,
    "Authorization": fmt.Sprintf("Bearer %v", c.AccessToken),
    "X-Csrf-Token":  c.CsrfToken,
  }
}
