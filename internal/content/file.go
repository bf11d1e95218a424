package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// FileSource serves collections stored as one JSON document per file under
// <dir>/<collection>/. Relations are stored as ids and populated per query
// up to the requested depth. Every Find reads the files again, so edits are
// visible to the next query.
type FileSource struct {
	dir    string
	logger *zap.Logger
}

func NewFileSource(dir string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{dir: dir, logger: logger}
}

func (s *FileSource) Find(ctx context.Context, q Query) (*Result, error) {
	if q.Collection == "" {
		return nil, errors.New("query without collection")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := &snapshot{dir: s.dir, draft: q.Draft, collections: map[string]*collection{}}
	col, err := snap.collection(q.Collection)
	if err != nil {
		return nil, err
	}

	var matches []map[string]any
	for _, id := range col.ids {
		doc, err := decodeDoc(col.docs[id])
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", q.Collection, id, err)
		}
		if !q.Draft && isDraft(doc) {
			continue
		}
		ok, err := matchAll(doc, q.Where)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, doc)
		}
	}
	sortDocs(matches, q.Sort)

	res := &Result{TotalDocs: len(matches), Page: 1, TotalPages: 1}
	if q.Unpaged {
		if q.Limit > 0 && len(matches) > q.Limit {
			matches = matches[:q.Limit]
		}
		res.Limit = len(matches)
	} else {
		limit := q.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		page := max(q.Page, 1)
		res.Limit, res.Page = limit, page
		res.TotalPages = max((len(matches)+limit-1)/limit, 1)
		start := min((page-1)*limit, len(matches))
		end := min(start+limit, len(matches))
		matches = matches[start:end]
	}

	for _, doc := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap.populate(doc, q.Collection, q.Depth)
		if snap.err != nil {
			return nil, snap.err
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		res.Docs = append(res.Docs, raw)
	}
	s.logger.Debug("file query",
		zap.String("collection", q.Collection),
		zap.Int("matched", res.TotalDocs),
		zap.Int("returned", len(res.Docs)))
	return res, nil
}

type collection struct {
	ids  []string
	docs map[string]json.RawMessage
}

// snapshot caches the collections one query touches.
type snapshot struct {
	dir         string
	draft       bool
	collections map[string]*collection
	err         error
}

func (s *snapshot) collection(name string) (*collection, error) {
	if c, ok := s.collections[name]; ok {
		return c, nil
	}
	c := &collection{docs: map[string]json.RawMessage{}}
	s.collections[name] = c

	dir := filepath.Join(s.dir, name)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", name, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		doc, err := decodeDoc(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		id := idString(doc["id"])
		if id == "" {
			id = strings.TrimSuffix(e.Name(), ".json")
			doc["id"] = id
			if data, err = json.Marshal(doc); err != nil {
				return nil, err
			}
		}
		if _, dup := c.docs[id]; dup {
			return nil, fmt.Errorf("collection %s: duplicate id %q in %s", name, id, path)
		}
		c.ids = append(c.ids, id)
		c.docs[id] = data
	}
	return c, nil
}

// fetch loads a fresh copy of one document populated to depth.
func (s *snapshot) fetch(name, id string, depth int) (map[string]any, bool) {
	if s.err != nil {
		return nil, false
	}
	c, err := s.collection(name)
	if err != nil {
		s.err = err
		return nil, false
	}
	raw, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	doc, err := decodeDoc(raw)
	if err != nil {
		s.err = fmt.Errorf("%s/%s: %w", name, id, err)
		return nil, false
	}
	if !s.draft && isDraft(doc) {
		return nil, false
	}
	s.populate(doc, name, depth-1)
	return doc, true
}

type relation struct {
	path   string
	target string
}

// relations lists the id-valued fields of each collection.
var relations = map[string][]relation{
	"posts": {
		{"categories", "categories"},
		{"tags", "categories"},
		{"heroImage", "media"},
		{"meta.image", "media"},
		{"relatedPosts", "posts"},
	},
	"pages": {
		{"meta.image", "media"},
	},
}

// blockRelations lists the id-valued fields of embedded blocks.
var blockRelations = map[string][]relation{
	"mediaBlock":   {{"media", "media"}},
	"relatedPosts": {{"docs", "posts"}},
	"homeLayout":   {{"friends.links.avatar", "media"}},
}

// populate replaces relation ids in doc with the documents they name.
// Polymorphic {relationTo, value} pairs (links, uploads) are found anywhere
// in the tree.
func (s *snapshot) populate(doc map[string]any, name string, depth int) {
	if depth <= 0 {
		return
	}
	s.walk(doc, depth)
	for _, r := range relations[name] {
		s.resolvePath(doc, strings.Split(r.path, "."), r.target, depth)
	}
}

// walk visits children before resolving the current level, so documents
// it inserts are never walked again at this depth.
func (s *snapshot) walk(v any, depth int) {
	switch t := v.(type) {
	case []any:
		for _, c := range t {
			s.walk(c, depth)
		}
	case map[string]any:
		for _, c := range t {
			s.walk(c, depth)
		}
		if rel, ok := t["relationTo"].(string); ok {
			if id := idString(t["value"]); id != "" {
				if doc, ok := s.fetch(rel, id, depth); ok {
					t["value"] = doc
				}
			}
		}
		if bt, ok := t["blockType"].(string); ok {
			for _, r := range blockRelations[bt] {
				s.resolvePath(t, strings.Split(r.path, "."), r.target, depth)
			}
		}
	}
}

func (s *snapshot) resolvePath(v any, path []string, target string, depth int) {
	switch t := v.(type) {
	case []any:
		for _, c := range t {
			s.resolvePath(c, path, target, depth)
		}
	case map[string]any:
		child, ok := t[path[0]]
		if !ok {
			return
		}
		if len(path) == 1 {
			t[path[0]] = s.resolveValue(child, target, depth)
			return
		}
		s.resolvePath(child, path[1:], target, depth)
	}
}

func (s *snapshot) resolveValue(v any, target string, depth int) any {
	if list, ok := v.([]any); ok {
		for i := range list {
			list[i] = s.resolveValue(list[i], target, depth)
		}
		return list
	}
	id := idString(v)
	if id == "" {
		return v
	}
	if doc, ok := s.fetch(target, id, depth); ok {
		return doc
	}
	return v
}

func decodeDoc(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("document is not an object")
	}
	return doc, nil
}

func isDraft(doc map[string]any) bool {
	status, _ := doc["_status"].(string)
	return status == "draft"
}

// idString returns the id a scalar relation value holds, or "" when v is
// not an id (already populated, null, ...).
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

func sortDocs(docs []map[string]any, field string) {
	if field == "" {
		return
	}
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")
	sort.SliceStable(docs, func(i, j int) bool {
		a, _ := lookup(docs[i], field)
		b, _ := lookup(docs[j], field)
		c := compareScalars(scalar(a), scalar(b))
		if desc {
			return c > 0
		}
		return c < 0
	})
}
