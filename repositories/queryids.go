package repositories

import (
  "context"
  "errors"
  "fmt"
  "io"
  "net/http"
  "regexp"
  "strings"
  "time"

  "github.com/PuerkitoBio/goquery"
  "github.com/go-redis/redis/v8"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
)

var (
  bundleUrlPattern = regexp.MustCompile(`https://abs\.twimg\.com/responsive-web/client-web(?:-legacy)?/[A-Za-z0-9.-]+\.js`)
  queryIdPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Patterns ordered by specificity; the webpack module export forms appear in
// newer bundles, the loose proximity forms in older ones.
var operationPatterns = []struct {
  re             *regexp.Regexp
  queryIdGroup   int
  operationGroup int
}{
  {regexp.MustCompile(`e\.exports=\{queryId\s*:\s*["']([^"']+)["']\s*,\s*operationName\s*:\s*["']([^"']+)["']`), 1, 2},
  {regexp.MustCompile(`e\.exports=\{operationName\s*:\s*["']([^"']+)["']\s*,\s*queryId\s*:\s*["']([^"']+)["']`), 2, 1},
  {regexp.MustCompile(`(?s)operationName\s*[:=]\s*["']([^"']+)["'].{0,1000}?queryId\s*[:=]\s*["']([^"']+)["']`), 2, 1},
  {regexp.MustCompile(`(?s)queryId\s*[:=]\s*["']([^"']+)["'].{0,1000}?operationName\s*[:=]\s*["']([^"']+)["']`), 1, 2},
}

type QueryIdsRepository struct {
  Rdb *redis.Client
  Ctx context.Context
}

func (r *QueryIdsRepository) Get(operation string) (queryID string, err error) {
  if r.Rdb != nil {
    value, cacheErr := r.Rdb.HGet(r.Ctx, config.REDIS_KEY_QUERY_IDS, operation).Result()
    if cacheErr == nil && value != "" {
      return value, nil
    }
  }
  if fallback, ok := config.FALLBACK_QUERY_IDS[operation]; ok {
    return fallback, nil
  }
  err = errors.New(fmt.Sprintf("unknown operation: %v", operation))
  return
}

func (r *QueryIdsRepository) Refresh() (err error) {
  httpClient := common.NewHttpClient(15 * time.Second)

  headers := map[string]string{
    "User-Agent": common.GetEnvString("SCRAPER_AGENT"),
    "cookie":     common.GetEnvString("SCRAPER_COOKIE"),
  }

  targets := map[string]bool{}
  for _, operation := range config.TargetOperations() {
    targets[operation] = true
  }
  discovered := map[string]string{}

  for _, page := range config.DISCOVERY_PAGES {
    var bundles []string
    bundles, err = r.extractBundleUrls(httpClient, headers, page)
    if err != nil {
      continue
    }
    for _, bundle := range bundles {
      if err = r.extractBundle(httpClient, headers, bundle, targets, discovered); err != nil {
        continue
      }
      if len(discovered) == len(targets) {
        break
      }
    }
    if len(discovered) == len(targets) {
      break
    }
  }

  if len(discovered) == 0 {
    return errors.New("no query ids discovered")
  }

  data := map[string]interface{}{
    "fetched_at": time.Now().Unix(),
  }
  for operation, queryID := range discovered {
    data[operation] = queryID
  }
  if r.Rdb != nil {
    r.Rdb.HMSet(r.Ctx, config.REDIS_KEY_QUERY_IDS, data)
    r.Rdb.Expire(r.Ctx, config.REDIS_KEY_QUERY_IDS, config.QUERY_IDS_TTL_SECONDS*time.Second)
  }

  return nil
}

func (r *QueryIdsRepository) extractBundleUrls(
  httpClient *http.Client,
  headers map[string]string,
  page string,
) (bundles []string, err error) {
  req, _ := http.NewRequest("GET", page, nil)
  for key, val := range headers {
    req.Header.Set(key, val)
  }
  resp, err := httpClient.Do(req)
  if err != nil {
    return
  }
  defer resp.Body.Close()

  if resp.StatusCode != http.StatusOK {
    err = errors.New(
      fmt.Sprintf(
        "request error: status[%s] code[%d]",
        resp.Status,
        resp.StatusCode,
      ),
    )
    return
  }

  body, _ := io.ReadAll(resp.Body)

  doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
  if err != nil {
    return
  }
  doc.Find("script").Each(func(i int, s *goquery.Selection) {
    if src, ok := s.Attr("src"); ok {
      if bundleUrlPattern.MatchString(src) {
        bundles = append(bundles, src)
      }
    }
  })

  for _, match := range bundleUrlPattern.FindAllString(string(body), -1) {
    exists := false
    for _, bundle := range bundles {
      if bundle == match {
        exists = true
        break
      }
    }
    if !exists {
      bundles = append(bundles, match)
    }
  }

  return
}

func (r *QueryIdsRepository) extractBundle(
  httpClient *http.Client,
  headers map[string]string,
  url string,
  targets map[string]bool,
  discovered map[string]string,
) (err error) {
  req, _ := http.NewRequest("GET", url, nil)
  for key, val := range headers {
    req.Header.Set(key, val)
  }
  resp, err := httpClient.Do(req)
  if err != nil {
    return
  }
  defer resp.Body.Close()

  if resp.StatusCode != http.StatusOK {
    err = errors.New(
      fmt.Sprintf(
        "request error: status[%s] code[%d]",
        resp.Status,
        resp.StatusCode,
      ),
    )
    return
  }

  body, _ := io.ReadAll(resp.Body)
  ExtractOperations(string(body), targets, discovered)

  return nil
}

func ExtractOperations(content string, targets map[string]bool, discovered map[string]string) {
  for _, pattern := range operationPatterns {
    for _, match := range pattern.re.FindAllStringSubmatch(content, -1) {
      operation := match[pattern.operationGroup]
      queryID := match[pattern.queryIdGroup]
      if !targets[operation] {
        continue
      }
      if !queryIdPattern.MatchString(queryID) {
        continue
      }
      if _, ok := discovered[operation]; ok {
        continue
      }
      discovered[operation] = queryID
      if len(discovered) == len(targets) {
        return
      }
    }
  }
}
