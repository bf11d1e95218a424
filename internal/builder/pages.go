package builder

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"go.uber.org/zap"

	"enscribe/internal/content"
	"enscribe/internal/links"
	"enscribe/internal/model"
	"enscribe/internal/readingtime"
	"enscribe/internal/render"
	"enscribe/internal/util"
)

const (
	archiveRoute = "/posts"
	homePosts    = 6
)

var fallbackIntro = model.HomeIntro{
	Eyebrow:        "Notes from a quiet forest.",
	TitlePrefix:    "Hi, I'm",
	TitleHighlight: "enscribe",
	Description:    "A developer who writes about building things on the web.",
}

var fallbackFriends = model.Friends{
	Title:       "Friends Links",
	Description: "No friends yet...",
}

func postRoute(slug string) string {
	if slug == "" {
		return archiveRoute
	}
	return links.CollectionPath(links.PostsCollection, slug)
}

func postTitle(p model.Post) string {
	switch {
	case p.Title != "":
		return p.Title
	case p.Meta.Title != "":
		return p.Meta.Title
	}
	return "Untitled"
}

func badges(refs []model.Ref[model.Category]) []Badge {
	titles := render.CategoryTitles(refs)
	out := make([]Badge, len(titles))
	for i, t := range titles {
		out[i] = Badge{Title: t, Class: render.CategoryClass(t)}
	}
	return out
}

func (b *Builder) card(p model.Post) PostCard {
	c := PostCard{
		Href:        postRoute(p.Slug),
		Title:       postTitle(p),
		Description: p.Meta.Description,
		Authors:     content.FormatAuthors(p.PopulatedAuthors),
		Date:        formatDate(p.Date()),
		ReadingTime: readingtime.ReadingTime(p.Content),
		Categories:  badges(p.Categories),
	}
	if m, ok := p.Cover(); ok {
		if img, ok := b.renderer.Media().Resolve(model.Resolved(m)); ok {
			c.Image = &img
		}
	}
	return c
}

func mergeIntro(in model.HomeIntro) model.HomeIntro {
	out := fallbackIntro
	if in.Eyebrow != "" {
		out.Eyebrow = in.Eyebrow
	}
	if in.TitlePrefix != "" || in.TitleHighlight != "" || in.TitleSuffix != "" {
		out.TitlePrefix, out.TitleHighlight, out.TitleSuffix = in.TitlePrefix, in.TitleHighlight, in.TitleSuffix
	}
	if in.Description != "" {
		out.Description = in.Description
	}
	return out
}

func (b *Builder) buildHome(ctx context.Context, outputDir string) (int, error) {
	layout, _, err := b.store.HomeLayout(ctx)
	if err != nil {
		return 0, err
	}
	latest, err := b.store.LatestPosts(ctx, homePosts)
	if err != nil {
		return 0, err
	}

	intro := mergeIntro(layout.Intro)
	introHTML, err := markdownToHTML([]byte(intro.Description), "")
	if err != nil {
		return 0, err
	}
	home := &HomeView{
		Eyebrow:        intro.Eyebrow,
		TitlePrefix:    intro.TitlePrefix,
		TitleHighlight: intro.TitleHighlight,
		TitleSuffix:    intro.TitleSuffix,
		Intro:          template.HTML(b.sanitize(introHTML)),
		Friends:        b.friends(layout.Friends),
	}
	for i, p := range latest {
		c := b.card(p)
		if i == 0 {
			home.Featured = &c
			continue
		}
		home.Recent = append(home.Recent, c)
	}

	page := b.newPage(KindHome, "/", b.site.Title, "")
	page.Home = home
	return 1, b.write(outputDir, page)
}

func (b *Builder) friends(in model.Friends) FriendsView {
	out := FriendsView{Title: fallbackFriends.Title, Description: fallbackFriends.Description}
	if in.Title != "" {
		out.Title = in.Title
	}
	if in.Description != "" {
		out.Description = in.Description
	}
	for _, l := range in.Links {
		if l.Name == "" || l.URL == "" {
			continue
		}
		f := FriendView{Name: l.Name, URL: l.URL, NewTab: l.NewTab, Initials: util.Initials(l.Name)}
		if img, ok := b.renderer.Media().Resolve(l.Avatar); ok {
			f.Avatar = &img
		}
		out.Links = append(out.Links, f)
	}
	return out
}

func archivePageRoute(n int) string {
	if n <= 1 {
		return archiveRoute
	}
	return archiveRoute + "/page/" + strconv.Itoa(n)
}

func (b *Builder) buildArchive(ctx context.Context, outputDir string) (int, error) {
	size := b.site.Posts.PageSize
	pagesGenerated := 0
	for n := 1; ; n++ {
		res, err := b.store.ListPosts(ctx, n, size)
		if err != nil {
			return pagesGenerated, err
		}

		view := &ArchiveView{
			Range:      content.PageRange(n, size, res.TotalDocs),
			Page:       n,
			TotalPages: res.TotalPages,
		}
		for _, g := range content.GroupByYear(res.Posts) {
			yc := YearCards{Year: g.Year}
			for _, p := range g.Posts {
				yc.Posts = append(yc.Posts, b.card(p))
			}
			view.Groups = append(view.Groups, yc)
		}
		if n > 1 {
			view.Prev = archivePageRoute(n - 1)
		}
		if n < res.TotalPages {
			view.Next = archivePageRoute(n + 1)
		}
		for i := 1; i <= res.TotalPages && res.TotalPages > 1; i++ {
			view.Pages = append(view.Pages, PageLink{Number: i, Href: archivePageRoute(i), Current: i == n})
		}

		title := "Posts"
		if n > 1 {
			title = fmt.Sprintf("Posts - Page %d", n)
		}
		page := b.newPage(KindArchive, archivePageRoute(n), title, "")
		page.Archive = view
		if err := b.write(outputDir, page); err != nil {
			return pagesGenerated, err
		}
		pagesGenerated++

		if n >= res.TotalPages {
			return pagesGenerated, nil
		}
	}
}

func (b *Builder) buildPosts(ctx context.Context, outputDir string) (int, error) {
	slugs, err := b.store.PostSlugs(ctx)
	if err != nil {
		return 0, err
	}
	pagesGenerated := 0
	for _, slug := range slugs {
		p, err := b.store.PostBySlug(ctx, slug)
		if errors.Is(err, content.ErrNotFound) {
			b.logger.Debug("post vanished during build", zap.String("slug", slug))
			continue
		}
		if err != nil {
			return pagesGenerated, err
		}
		page, err := b.postPage(ctx, p)
		if err != nil {
			return pagesGenerated, fmt.Errorf("post %q: %w", slug, err)
		}
		if err := b.write(outputDir, page); err != nil {
			return pagesGenerated, err
		}
		if err := b.writeMarkdownExport(outputDir, p); err != nil {
			return pagesGenerated, fmt.Errorf("post %q: %w", slug, err)
		}
		pagesGenerated++
	}
	return pagesGenerated, nil
}

func (b *Builder) postPage(ctx context.Context, p model.Post) (PageData, error) {
	body, err := b.richText(p.Content)
	if err != nil {
		return PageData{}, err
	}

	words := readingtime.WordCount(p.Content)
	view := &PostView{
		Breadcrumbs: []Crumb{{Label: "Home", Href: "/"}, {Label: "Posts", Href: archiveRoute}, {Label: postTitle(p)}},
		Authors:     content.FormatAuthors(p.PopulatedAuthors),
		Published:   formatDate(p.Date()),
		WordCount:   readingtime.FormatWordCount(words),
		ReadingTime: readingtime.FromWordCount(words),
		Categories:  badges(p.Categories),
		Tags:        badges(p.Tags),
		Markdown:    "index.md",
	}
	if edited := formatDate(p.LastEdited); edited != "" && edited != view.Published {
		view.Edited = edited
	}
	if m, ok := p.Cover(); ok {
		if img, ok := b.renderer.Media().Resolve(model.Resolved(m)); ok {
			view.Cover = &img
		}
	}
	if len(p.RelatedPosts) > 0 {
		nodes, err := b.renderer.RenderBlocks([]model.Block{model.RelatedPostsBlock{Docs: p.RelatedPosts}})
		if err != nil {
			return PageData{}, err
		}
		if view.Related, err = b.markup(nodes); err != nil {
			return PageData{}, err
		}
	}

	older, newer, err := b.store.AdjacentPosts(ctx, p)
	if err != nil {
		return PageData{}, err
	}
	if older != nil {
		view.Older = &NeighborLink{Href: postRoute(older.Slug), Title: older.Title}
	}
	if newer != nil {
		view.Newer = &NeighborLink{Href: postRoute(newer.Slug), Title: newer.Title}
	}

	page := b.newPage(KindPost, postRoute(p.Slug), postTitle(p), p.Meta.Description)
	if a := view.Authors; a != "" {
		page.Author = a
	}
	page.Content = body
	page.Post = view
	return page, nil
}

func (b *Builder) buildPages(ctx context.Context, outputDir string) (int, error) {
	pages, err := b.store.Pages(ctx)
	if err != nil {
		return 0, err
	}
	pagesGenerated := 0
	for _, p := range pages {
		if p.Slug == "" || p.Slug == content.HomeSlug {
			continue
		}
		layout, err := b.renderer.RenderBlocks(p.Layout)
		if err != nil {
			return pagesGenerated, fmt.Errorf("page %q: %w", p.Slug, err)
		}
		body, err := b.renderer.Render(p.Content)
		if err != nil {
			return pagesGenerated, fmt.Errorf("page %q: %w", p.Slug, err)
		}
		markup, err := b.markup(append(layout, body...))
		if err != nil {
			return pagesGenerated, err
		}

		page := b.newPage(KindPage, links.CollectionPath("pages", p.Slug), p.Title, p.Meta.Description)
		page.Content = markup
		if err := b.write(outputDir, page); err != nil {
			return pagesGenerated, err
		}
		pagesGenerated++
	}
	return pagesGenerated, nil
}
