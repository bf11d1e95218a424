package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"enscribe/internal/model"
)

const (
	postsCollection = "posts"
	pagesCollection = "pages"

	// HomeSlug is the page whose layout configures the home page.
	HomeSlug = "home"

	// detailDepth populates a post's relations and the relations of its
	// related posts (their cover and categories).
	detailDepth = 2
)

// Store runs the site's typed queries against a Source.
type Store struct {
	src    Source
	draft  bool
	logger *zap.Logger
}

func NewStore(src Source, draft bool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{src: src, draft: draft, logger: logger}
}

func decodeDocs[T any](collection string, res *Result) ([]T, error) {
	out := make([]T, 0, len(res.Docs))
	for i, raw := range res.Docs {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", collection, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Store) find(ctx context.Context, q Query) (*Result, error) {
	q.Draft = s.draft
	res, err := s.src.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", q.Collection, err)
	}
	return res, nil
}

func (s *Store) one(ctx context.Context, collection, slug string, depth int) (json.RawMessage, error) {
	res, err := s.find(ctx, Query{
		Collection: collection,
		Where:      []Filter{{Field: "slug", Op: Equals, Value: slug}},
		Limit:      1,
		Depth:      depth,
		Unpaged:    true,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		return nil, fmt.Errorf("%s %q: %w", collection, slug, ErrNotFound)
	}
	return res.Docs[0], nil
}

// PostBySlug fetches one post with relations populated for the detail
// page.
func (s *Store) PostBySlug(ctx context.Context, slug string) (model.Post, error) {
	raw, err := s.one(ctx, postsCollection, slug, detailDepth)
	if err != nil {
		return model.Post{}, err
	}
	var p model.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Post{}, fmt.Errorf("decode post %q: %w", slug, err)
	}
	return p, nil
}

// PostSlugs lists every post slug, newest first.
func (s *Store) PostSlugs(ctx context.Context) ([]string, error) {
	res, err := s.find(ctx, Query{Collection: postsCollection, Sort: "-publishedAt", Unpaged: true})
	if err != nil {
		return nil, err
	}
	posts, err := decodeDocs[struct {
		Slug string `json:"slug"`
	}](postsCollection, res)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.Slug != "" {
			slugs = append(slugs, p.Slug)
		}
	}
	return slugs, nil
}

// PostPage is one page of the post archive.
type PostPage struct {
	Posts      []model.Post
	Page       int
	TotalPages int
	TotalDocs  int
	Limit      int
}

// ListPosts returns page (1-based) of the archive, newest first.
func (s *Store) ListPosts(ctx context.Context, page, size int) (PostPage, error) {
	res, err := s.find(ctx, Query{
		Collection: postsCollection,
		Sort:       "-publishedAt",
		Limit:      size,
		Page:       page,
		Depth:      1,
	})
	if err != nil {
		return PostPage{}, err
	}
	posts, err := decodeDocs[model.Post](postsCollection, res)
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{
		Posts:      posts,
		Page:       res.Page,
		TotalPages: res.TotalPages,
		TotalDocs:  res.TotalDocs,
		Limit:      res.Limit,
	}, nil
}

// LatestPosts returns the n newest posts.
func (s *Store) LatestPosts(ctx context.Context, n int) ([]model.Post, error) {
	res, err := s.find(ctx, Query{
		Collection: postsCollection,
		Sort:       "-publishedAt",
		Limit:      n,
		Depth:      1,
		Unpaged:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeDocs[model.Post](postsCollection, res)
}

// PostLink is the slug and title of a neighboring post.
type PostLink struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// AdjacentPosts finds the posts published right before (older) and right
// after (newer) p. Posts without publishedAt are ordered by createdAt.
func (s *Store) AdjacentPosts(ctx context.Context, p model.Post) (older, newer *PostLink, err error) {
	field, at := "publishedAt", p.PublishedAt
	if at.IsZero() {
		field, at = "createdAt", p.CreatedAt
	}
	if at.IsZero() {
		return nil, nil, nil
	}
	value := at.UTC().Format("2006-01-02T15:04:05.000Z")

	neighbor := func(op Operator, sortBy string) (*PostLink, error) {
		res, err := s.find(ctx, Query{
			Collection: postsCollection,
			Where:      []Filter{{Field: field, Op: op, Value: value}},
			Sort:       sortBy,
			Limit:      1,
			Unpaged:    true,
		})
		if err != nil {
			return nil, err
		}
		links, err := decodeDocs[PostLink](postsCollection, res)
		if err != nil || len(links) == 0 || links[0].Slug == "" || links[0].Title == "" {
			return nil, err
		}
		return &links[0], nil
	}

	if older, err = neighbor(LessThan, "-"+field); err != nil {
		return nil, nil, err
	}
	if newer, err = neighbor(GreaterThan, field); err != nil {
		return nil, nil, err
	}
	return older, newer, nil
}

// PageBySlug fetches one page with its layout relations populated.
func (s *Store) PageBySlug(ctx context.Context, slug string) (model.Page, error) {
	raw, err := s.one(ctx, pagesCollection, slug, detailDepth)
	if err != nil {
		return model.Page{}, err
	}
	var p model.Page
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Page{}, fmt.Errorf("decode page %q: %w", slug, err)
	}
	return p, nil
}

// Pages returns every page.
func (s *Store) Pages(ctx context.Context) ([]model.Page, error) {
	res, err := s.find(ctx, Query{Collection: pagesCollection, Sort: "slug", Depth: detailDepth, Unpaged: true})
	if err != nil {
		return nil, err
	}
	return decodeDocs[model.Page](pagesCollection, res)
}

// HomeLayout returns the homeLayout block of the home page. A missing page
// or block is not an error: the home page falls back to its defaults.
func (s *Store) HomeLayout(ctx context.Context) (model.HomeLayoutBlock, bool, error) {
	page, err := s.PageBySlug(ctx, HomeSlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug("no home page, using defaults")
			return model.HomeLayoutBlock{}, false, nil
		}
		return model.HomeLayoutBlock{}, false, err
	}
	b, ok := page.Layout.Find(model.KindHomeLayout)
	if !ok {
		return model.HomeLayoutBlock{}, false, nil
	}
	home, ok := b.(model.HomeLayoutBlock)
	return home, ok, nil
}

// YearGroup is the posts of one publication year.
type YearGroup struct {
	Year  string
	Posts []model.Post
}

// GroupByYear buckets posts by the year of Date(), newest year first, with
// undated posts last under "Unknown". Order within a year is kept.
func GroupByYear(posts []model.Post) []YearGroup {
	index := map[string]int{}
	var groups []YearGroup
	for _, p := range posts {
		year := "Unknown"
		if d := p.Date(); !d.IsZero() {
			year = strconv.Itoa(d.Year())
		}
		i, ok := index[year]
		if !ok {
			i = len(groups)
			index[year] = i
			groups = append(groups, YearGroup{Year: year})
		}
		groups[i].Posts = append(groups[i].Posts, p)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Year, groups[j].Year
		if a == "Unknown" || b == "Unknown" {
			return b == "Unknown" && a != "Unknown"
		}
		return a > b
	})
	return groups
}

// FormatAuthors joins author names: "A", "A and B", "A, B and C".
func FormatAuthors(authors []model.Author) string {
	var names []string
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// PageRange describes the visible slice of an archive page.
func PageRange(page, limit, total int) string {
	if total == 0 {
		return "Search produced no results."
	}
	first := (page-1)*limit + 1
	last := min(page*limit, total)
	noun := "Posts"
	if total == 1 {
		noun = "Post"
	}
	return fmt.Sprintf("Showing %d - %d of %d %s", first, last, total, noun)
}
