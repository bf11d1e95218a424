package scaffold

// Default theme. Templates receive builder.PageData; "main" in layout.html
// picks the body template by .Kind.

const templateLayoutHtmlContent = `{{ define "main" }}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ if eq .Kind "home" }}{{ .Site.Title }}{{ else }}{{ .Title }} | {{ .Site.Title }}{{ end }}</title>
  <meta name="description" content="{{ .Description }}">
{{- if .Author }}
  <meta name="author" content="{{ .Author }}">
{{- end }}
  <link rel="stylesheet" href="{{ .BaseHref }}css/style.css">
  <link rel="stylesheet" href="{{ .BaseHref }}css/chroma.css">
</head>
<body class="page-{{ .Kind }}" data-diagram-theme="{{ .Site.Diagrams.Theme }}">
  {{ template "header" . }}
  <main>
  {{- if eq .Kind "home" }}{{ template "home" . }}
  {{- else if eq .Kind "archive" }}{{ template "archive" . }}
  {{- else if eq .Kind "post" }}{{ template "post" . }}
  {{- else }}{{ template "page" . }}{{ end }}
  </main>
  {{ template "footer" . }}
  <script src="{{ .BaseHref }}js/enscribe.js" defer></script>
</body>
</html>
{{ end }}`

const templateHeaderHtmlContent = `{{ define "header" }}
<header class="site-header">
  <a class="site-name" href="{{ .BaseHref }}index.html">{{ .Site.Title }}</a>
  <nav>
    <a href="{{ .BaseHref }}posts/index.html">Posts</a>
  </nav>
</header>
{{ end }}`

const templateFooterHtmlContent = `{{ define "footer" }}
<footer class="site-footer">
  <div class="copyright">&copy; {{ year }} {{ if .Site.Author }}{{ .Site.Author }}{{ else }}{{ .Site.Title }}{{ end }}</div>
</footer>
{{ end }}`

const templateHomeHtmlContent = `{{ define "home" }}{{ with .Home }}
<section class="intro">
  {{- if .Eyebrow }}<p class="eyebrow">{{ .Eyebrow }}</p>{{ end }}
  {{- if or .TitlePrefix .TitleHighlight .TitleSuffix }}
  <h1>{{ .TitlePrefix }} {{ if .TitleHighlight }}<span class="highlight">{{ .TitleHighlight }}</span>{{ end }} {{ .TitleSuffix }}</h1>
  {{- end }}
  <div class="intro-description">{{ .Intro }}</div>
</section>

<section class="featured">
  <p class="label">Latest Post</p>
  {{- with .Featured }}
  <a class="featured-card" href="{{ .Href }}" aria-label="Read latest post: {{ .Title }}">
    <h2>{{ mathText .Title }}</h2>
    {{ if .Date }}<p class="date">{{ .Date }}</p>{{ end }}
    {{ with .Image }}<img src="{{ .URL }}" alt="{{ .Alt }}" loading="lazy">{{ else }}<div class="card-noimage">No featured image</div>{{ end }}
  </a>
  {{- else }}
  <div class="featured-card"><h2>No posts yet.</h2><div class="card-noimage">No featured image</div></div>
  {{- end }}
</section>

<section class="recent">
  <div class="recent-header"><h3>Recent Posts</h3><a href="posts/index.html">View all</a></div>
  {{- if .Recent }}
  <ul class="recent-list">
  {{- range .Recent }}
    <li><a href="{{ .Href }}"><span>{{ mathText .Title }}</span>{{ if .Date }}<span class="date">{{ .Date }}</span>{{ end }}</a></li>
  {{- end }}
  </ul>
  {{- else }}
  <p class="empty">No posts yet. Check back soon.</p>
  {{- end }}
</section>

{{ with .Friends }}
<section class="friends">
  {{ if .Title }}<h3>{{ .Title }}</h3>{{ end }}
  {{ if .Description }}<p>{{ .Description }}</p>{{ end }}
  {{- if .Links }}
  <ul class="friend-links">
  {{- range .Links }}
    <li><a href="{{ .URL }}"{{ if .NewTab }} target="_blank" rel="noopener noreferrer"{{ end }}>
      {{- with .Avatar }}<img class="avatar" src="{{ .URL }}" alt="{{ .Alt }}">{{ else }}<span class="avatar avatar-initials">{{ .Initials }}</span>{{ end -}}
      <span>{{ .Name }}</span></a></li>
  {{- end }}
  </ul>
  {{- end }}
</section>
{{ end }}
{{ end }}{{ end }}`

const templateArchiveHtmlContent = `{{ define "card" }}
<article class="card">
  <a href="{{ .Href }}">
    {{ with .Image }}<img src="{{ .URL }}" alt="{{ .Alt }}" loading="lazy">{{ end }}
    {{- if .Categories }}
    <div class="card-categories">{{ range .Categories }}<span class="badge {{ .Class }}">{{ .Title }}</span>{{ end }}</div>
    {{- end }}
    <h3 class="card-title">{{ mathText .Title }}</h3>
    {{ if .Description }}<p class="card-description">{{ .Description }}</p>{{ end }}
    <p class="card-meta">
      {{- if .Authors }}<span class="authors">{{ .Authors }}</span>{{ end }}
      {{- if .Date }}<span class="date">{{ .Date }}</span>{{ end }}
      <span class="reading-time">{{ .ReadingTime }}</span>
    </p>
  </a>
</article>
{{ end }}

{{ define "archive" }}{{ with .Archive }}
<h1>Posts</h1>
<p class="page-range">{{ .Range }}</p>
{{- range .Groups }}
<section class="year-group">
  <h2>{{ .Year }}</h2>
  <div class="card-grid">{{ range .Posts }}{{ template "card" . }}{{ end }}</div>
</section>
{{- end }}
{{- if .Pages }}
<nav class="pagination" aria-label="Pagination">
  {{ if .Prev }}<a class="prev" href="{{ .Prev }}">Previous</a>{{ end }}
  {{- range .Pages }}{{ if .Current }}<span aria-current="page">{{ .Number }}</span>{{ else }}<a href="{{ .Href }}">{{ .Number }}</a>{{ end }}{{ end }}
  {{ if .Next }}<a class="next" href="{{ .Next }}">Next</a>{{ end }}
</nav>
{{- end }}
{{ end }}{{ end }}`

const templatePostHtmlContent = `{{ define "post" }}{{ with .Post }}
<article class="post">
  <nav class="breadcrumbs" aria-label="Breadcrumb">
  {{- range $i, $c := .Breadcrumbs }}{{ if $i }} › {{ end }}{{ if $c.Href }}<a href="{{ $c.Href }}">{{ $c.Label }}</a>{{ else }}<span aria-current="page">{{ mathText $c.Label }}</span>{{ end }}{{ end -}}
  </nav>
  <header class="post-header">
    {{- if .Categories }}
    <div class="post-categories">{{ range .Categories }}<span class="badge {{ .Class }}">{{ .Title }}</span>{{ end }}</div>
    {{- end }}
    <h1>{{ mathText $.Title }}</h1>
    <p class="post-meta">
      {{- if .Authors }}<span class="authors">{{ .Authors }}</span>{{ end }}
      {{- if .Published }}<time>{{ .Published }}</time>{{ end }}
      {{- if .Edited }}<span class="edited">-&gt; {{ .Edited }}</span>{{ end }}
      <span class="word-count">{{ .WordCount }}</span>
      <span class="reading-time">{{ .ReadingTime }}</span>
      <a class="markdown-link" href="{{ .Markdown }}">Markdown</a>
    </p>
    {{ with .Cover }}<img class="post-cover" src="{{ .URL }}" alt="{{ .Alt }}"{{ if .Width }} width="{{ .Width }}"{{ end }}{{ if .Height }} height="{{ .Height }}"{{ end }}>{{ end }}
  </header>
  <div class="post-content">{{ $.Content }}</div>
  {{- if .Tags }}
  <footer class="post-tags">{{ range .Tags }}<span class="badge tag">#{{ .Title }}</span>{{ end }}</footer>
  {{- end }}
  {{- if .Related }}
  <aside class="post-related"><h2>Related Posts</h2>{{ .Related }}</aside>
  {{- end }}
  {{- if or .Older .Newer }}
  <nav class="post-nav">
    {{ with .Older }}<a class="older" href="{{ .Href }}">&larr; {{ mathText .Title }}</a>{{ end }}
    {{ with .Newer }}<a class="newer" href="{{ .Href }}">{{ mathText .Title }} &rarr;</a>{{ end }}
  </nav>
  {{- end }}
</article>
{{ end }}{{ end }}`

const templatePageHtmlContent = `{{ define "page" }}
<article class="page">
  <h1>{{ mathText .Title }}</h1>
  <div class="page-content">{{ .Content }}</div>
</article>
{{ end }}`

const staticCssContent = `body {
  font-family: system-ui, sans-serif;
  max-width: 760px;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: #222;
  background: #fdfdfd;
}
a { color: #2457c5; }
.site-header { display: flex; justify-content: space-between; align-items: baseline; margin-bottom: 2em; }
.site-name { font-weight: 600; text-decoration: none; color: inherit; }
.site-footer { text-align: center; font-size: 0.9em; color: #555; margin-top: 3em; }
.eyebrow, .label, .date, .post-meta, .card-meta { color: #777; font-size: 0.85em; }
.highlight { color: #2457c5; }
.card-grid { display: grid; gap: 1em; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); }
.card, .featured-card { display: block; border: 1px solid #ddd; border-radius: 10px; padding: 1em; color: inherit; text-decoration: none; }
.card img, .featured-card img, .post-cover { max-width: 100%; height: auto; border-radius: 8px; }
.card-noimage { padding: 2em; text-align: center; color: #999; background: #f3f3f3; }
.badge { display: inline-block; font-size: 0.75em; padding: 0.1em 0.5em; border-radius: 999px; margin-right: 0.3em; background: #eee; }
.badge-crypto { background: #fde7c7; } .badge-web { background: #d6e9ff; } .badge-reverse { background: #f4d6ff; }
.badge-pwn { background: #ffd6d6; } .badge-misc { background: #e6e6e6; } .badge-forensic { background: #d6ffe9; }
.badge-osint { background: #fff6c7; } .badge-blockchain { background: #d6fff9; } .badge-ppc { background: #e9d6ff; }
.avatar { width: 32px; height: 32px; border-radius: 50%; display: inline-flex; align-items: center; justify-content: center; background: #eee; }
.banner { border-left: 4px solid; padding: 0.5em 1em; margin: 1em 0; border-radius: 6px; }
.banner-blue { border-color: #2457c5; background: #eef4ff; } .banner-amber { border-color: #c58a24; background: #fff7e6; }
.banner-green { border-color: #2f9e44; background: #ebfbee; } .banner-red { border-color: #c92a2a; background: #fff5f5; }
.banner-purple { border-color: #7048e8; background: #f3f0ff; } .banner-cyan { border-color: #1098ad; background: #e3fafc; }
.banner-title { cursor: pointer; font-weight: 600; }
.code-block { border: 1px solid #ddd; border-radius: 8px; margin: 1em 0; overflow: hidden; }
.code-header { display: flex; gap: 1em; align-items: center; padding: 0.3em 0.8em; background: #f3f3f3; font-size: 0.8em; }
.copy-button { margin-left: auto; }
.code-block pre { margin: 0; padding: 0.8em; overflow-x: auto; }
.line .ln { display: inline-block; width: 2.5em; color: #aaa; user-select: none; }
.math-block { overflow-x: auto; margin: 1em 0; }
.math-error, .mermaid-error { border: 1px solid #c92a2a; background: #fff5f5; padding: 0.5em 1em; border-radius: 6px; }
.mermaid-block[data-state="rendering"] pre.mermaid { display: none; }
.table-block { overflow-x: auto; }
.table-block table { border-collapse: collapse; width: 100%; }
.table-block th, .table-block td { border: 1px solid #ddd; padding: 0.4em 0.6em; }
.table-empty { text-align: center; color: #999; }
.media-block img { max-width: 100%; height: auto; }
.media-caption { font-size: 0.85em; color: #666; }
.check-list { list-style: none; }
.check-list .checked::before { content: "☑ "; } .check-list .unchecked::before { content: "☐ "; }
.text-center { text-align: center; } .text-right, .text-end { text-align: right; } .text-justify { text-align: justify; }
.content-columns { display: grid; gap: 1em; grid-template-columns: repeat(12, 1fr); }
.column-oneThird { grid-column: span 4; } .column-half { grid-column: span 6; }
.column-twoThirds { grid-column: span 8; } .column-full { grid-column: span 12; }
.related-grid { display: grid; gap: 1em; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); }
.post-nav { display: flex; justify-content: space-between; margin-top: 2em; }
`

// staticJsContent wires copy buttons and draws diagrams. Running it twice
// is harmless: rendered diagrams are skipped by their data-state.
const staticJsContent = `(function () {
  document.querySelectorAll(".copy-button[data-code]").forEach(function (btn) {
    if (btn.dataset.bound) return;
    btn.dataset.bound = "1";
    btn.addEventListener("click", function () {
      navigator.clipboard.writeText(btn.dataset.code).then(function () {
        btn.textContent = "Copied";
        setTimeout(function () { btn.textContent = "Copy"; }, 1500);
      });
    });
  });

  var blocks = document.querySelectorAll('.mermaid-block[data-state="rendering"]');
  if (!blocks.length) return;
  import("https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs").then(function (m) {
    var mermaid = m.default;
    blocks.forEach(function (block) {
      var pre = block.querySelector("pre.mermaid");
      var status = block.querySelector(".mermaid-status");
      mermaid.initialize({ startOnLoad: false, theme: block.dataset.theme || "default" });
      mermaid.render(pre.id + "-svg", pre.textContent).then(function (out) {
        block.innerHTML = out.svg;
        block.dataset.state = "rendered";
      }).catch(function (err) {
        block.dataset.state = "error";
        if (status) status.textContent = "Error rendering diagram: " + err.message;
      });
    });
  });
})();
`
