package scaffold

// Sample documents, laid out the way content.FileSource reads them:
// content/<collection>/<slug>.json with relations stored as ids.

const siteYamlContent = `title: My Notes
author: Your Name
baseurl: /
description: A new blog powered by enscribe.
template: default
source:
  kind: file
  dir: content
posts:
  pageSize: 12
diagrams:
  theme: default
code:
  style: github
`

const envExampleContent = `# Point the site at a CMS instead of local JSON files.
# ENSCRIBE_CMS_URL=https://cms.example.com
# ENSCRIBE_CMS_API_KEY=
# ENSCRIBE_MEDIA_URL=https://cms.example.com
`

const sampleCategoryContent = `{
  "id": "web",
  "title": "Web",
  "slug": "web"
}
`

const samplePostContent = `{
  "id": "hello-world",
  "title": "Hello, world",
  "slug": "hello-world",
  "_status": "published",
  "publishedAt": "2024-01-01T00:00:00.000Z",
  "categories": ["web"],
  "populatedAuthors": [{"id": "author", "name": "Your Name"}],
  "meta": {"description": "A first post showing what rich text can do."},
  "content": {"root": {"type": "root", "children": [
    {"type": "heading", "tag": "h2", "children": [{"type": "text", "text": "Getting started", "format": 0}]},
    {"type": "paragraph", "children": [
      {"type": "text", "text": "Inline math like $e^{i\\pi} + 1 = 0$ works in ", "format": 0},
      {"type": "text", "text": "any", "format": 2},
      {"type": "text", "text": " paragraph. Read more ", "format": 0},
      {"type": "link", "fields": {"linkType": "internal", "doc": {"relationTo": "pages", "value": "about"}},
       "children": [{"type": "text", "text": "about this site", "format": 0}]},
      {"type": "text", "text": ".", "format": 0}
    ]},
    {"type": "block", "fields": {"blockType": "banner", "style": "tip", "content": {"root": {"type": "root", "children": [
      {"type": "paragraph", "children": [{"type": "text", "text": "Banners collapse when clicked.", "format": 0}]}
    ]}}}},
    {"type": "block", "fields": {"blockType": "code", "language": "go", "title": "main.go",
      "code": "package main\n\nfunc main() {\n\tprintln(\"hello\")\n}\n"}},
    {"type": "block", "fields": {"blockType": "math", "formula": "\\sum_{k=1}^{n} k = \\frac{n(n+1)}{2}"}},
    {"type": "block", "fields": {"blockType": "mermaid", "diagram": "graph TD\n  A[Write] --> B[Publish]"}},
    {"type": "block", "fields": {"blockType": "table",
      "headers": [{"header": "Name"}, {"header": "Value"}],
      "rows": [{"cells": [{"content": "area"}, {"content": "$\\pi r^2$"}]}]}}
  ]}}
}
`

const sampleHomeContent = `{
  "id": "home",
  "title": "Home",
  "slug": "home",
  "layout": [{
    "blockType": "homeLayout",
    "intro": {
      "eyebrow": "Welcome",
      "titlePrefix": "Hi, I'm",
      "titleHighlight": "Your Name",
      "description": "I write about **software** and the things I learn building it."
    },
    "friends": {"title": "Friends Links", "links": []}
  }]
}
`

const sampleAboutContent = `{
  "id": "about",
  "title": "About",
  "slug": "about",
  "layout": [{
    "blockType": "content",
    "columns": [{"size": "full", "richText": {"root": {"type": "root", "children": [
      {"type": "paragraph", "children": [{"type": "text", "text": "This site is generated by enscribe.", "format": 0}]}
    ]}}}]
  }]
}
`

const sampleMarkdownContent = `---
title: Colophon
description: How this site is built.
---

Pages written in markdown live in the markdown directory.
Links such as [the first post](posts/hello-world.md) point at site routes.
`

const archetypePostContent = `{
  "id": {{ json .Slug }},
  "title": {{ json .Title }},
  "slug": {{ json .Slug }},
  "_status": "published",
  "publishedAt": {{ json .Date }},
  "populatedAuthors": [{"id": "author", "name": {{ json .Author }}}],
  "meta": {"description": ""},
  "content": {"root": {"type": "root", "children": [
    {"type": "paragraph", "children": [{"type": "text", "text": "Write something meaningful here.", "format": 0}]}
  ]}}
}
`

const archetypePageContent = `---
title: {{ json .Title }}
description:
---

Write something meaningful here.
`
