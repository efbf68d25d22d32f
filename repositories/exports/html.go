package exports

import (
  "encoding/json"
  "html/template"
  "io"
)

const viewerTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TweetHoarder — {{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0 auto; max-width: 640px; padding: 16px; background: #f7f9fa; }
input { width: 100%; padding: 10px; font-size: 16px; border: 1px solid #cfd9de; border-radius: 20px; box-sizing: border-box; }
.tweet { background: #fff; border: 1px solid #eff3f4; border-radius: 12px; padding: 12px 16px; margin: 12px 0; }
.author { font-weight: bold; }
.username, .date, .counts { color: #536471; font-size: 13px; }
.text { white-space: pre-wrap; margin: 8px 0; }
.repost { color: #536471; font-size: 13px; }
img.media { max-width: 100%; border-radius: 12px; margin-top: 8px; }
a { color: #1d9bf0; text-decoration: none; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<input id="q" type="search" placeholder="Search tweets..." autofocus>
<div id="tweets"></div>
<script>
var tweets = {{.Data}};
var container = document.getElementById("tweets");
function esc(s) {
  var div = document.createElement("div");
  div.textContent = s || "";
  return div.innerHTML;
}
function render(filter) {
  var q = (filter || "").toLowerCase();
  container.innerHTML = tweets.filter(function (t) {
    if (!q) return true;
    return (t.text || "").toLowerCase().indexOf(q) >= 0 ||
      (t.author_username || "").toLowerCase().indexOf(q) >= 0 ||
      (t.author_display_name || "").toLowerCase().indexOf(q) >= 0;
  }).map(function (t) {
    var html = '<div class="tweet">';
    if (t.is_retweet && t.retweeter_username) {
      html += '<div class="repost">Reposted by @' + esc(t.retweeter_username) + '</div>';
    }
    html += '<span class="author">' + esc(t.author_display_name || t.author_username) + '</span> ';
    html += '<span class="username">@' + esc(t.author_username) + '</span>';
    html += '<div class="text">' + esc(t.text) + '</div>';
    (t.media || []).forEach(function (m) {
      if (m.media_url_https) {
        html += '<img class="media" loading="lazy" src="' + esc(m.media_url_https) + '">';
      }
    });
    html += '<div class="counts">' + esc(t.created_at) + ' · ' +
      (t.reply_count || 0) + ' replies · ' + (t.retweet_count || 0) + ' reposts · ' +
      (t.like_count || 0) + ' likes · <a href="' + esc(t.url) + '">permalink</a></div>';
    return html + '</div>';
  }).join("");
}
document.getElementById("q").addEventListener("input", function (e) {
  render(e.target.value);
});
render("");
</script>
</body>
</html>
`

func (r *ExportsRepository) Html(collectionType string, w io.Writer) (err error) {
  t, err := template.New("viewer").Parse(viewerTemplate)
  if err != nil {
    return
  }
  data, err := json.Marshal(r.collect(collectionType))
  if err != nil {
    return
  }
  err = t.Execute(w, map[string]interface{}{
    "Title": collectionTitle(collectionType),
    "Data":  template.JS(data),
  })
  return
}
