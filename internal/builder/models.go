// internal/builder/models.go
package builder

import (
	"html/template"

	"enscribe/internal/config"
	"enscribe/internal/media"
)

// Page kinds select the body template the layout's "main" renders.
const (
	KindHome     = "home"
	KindArchive  = "archive"
	KindPost     = "post"
	KindPage     = "page"
	KindMarkdown = "markdown"
)

// PageData is the struct passed to templates.
type PageData struct {
	Kind        string
	Route       string
	Content     template.HTML
	Title       string
	BaseHref    string
	Author      string
	Description string
	Site        config.SiteConfig
	Params      map[string]any

	Home    *HomeView
	Archive *ArchiveView
	Post    *PostView
}

// Badge is a category or tag label.
type Badge struct {
	Title string
	Class string
	Href  string
}

// PostCard is a post as it appears in listings.
type PostCard struct {
	Href        string
	Title       string
	Description string
	Authors     string
	Date        string
	ReadingTime string
	Image       *media.Image
	Categories  []Badge
}

type HomeView struct {
	Eyebrow        string
	TitlePrefix    string
	TitleHighlight string
	TitleSuffix    string
	Intro          template.HTML
	Featured       *PostCard
	Recent         []PostCard
	Friends        FriendsView
}

type FriendsView struct {
	Title       string
	Description string
	Links       []FriendView
}

type FriendView struct {
	Name     string
	URL      string
	NewTab   bool
	Initials string
	Avatar   *media.Image
}

type YearCards struct {
	Year  string
	Posts []PostCard
}

type PageLink struct {
	Number  int
	Href    string
	Current bool
}

type ArchiveView struct {
	Groups     []YearCards
	Range      string
	Page       int
	TotalPages int
	Prev       string
	Next       string
	Pages      []PageLink
}

type Crumb struct {
	Label string
	Href  string
}

type NeighborLink struct {
	Href  string
	Title string
}

type PostView struct {
	Breadcrumbs []Crumb
	Cover       *media.Image
	Authors     string
	Published   string
	Edited      string
	WordCount   string
	ReadingTime string
	Categories  []Badge
	Tags        []Badge
	Related     template.HTML
	Older       *NeighborLink
	Newer       *NeighborLink
	Markdown    string
}
