package render

import (
	"fmt"

	"golang.org/x/net/html"

	"enscribe/internal/model"
)

func defaultBlockConverters() map[model.BlockKind]BlockConverter {
	return map[model.BlockKind]BlockConverter{
		model.KindBanner:       Typed(renderBanner),
		model.KindCode:         Typed(renderCode),
		model.KindMath:         Typed(renderMath),
		model.KindMermaid:      Typed(renderMermaid),
		model.KindTable:        Typed(renderTable),
		model.KindMedia:        Typed(renderMedia),
		model.KindCallToAction: Typed(renderCallToAction),
		model.KindRelatedPosts: Typed(renderRelatedPosts),
		model.KindContent:      Typed(renderContent),
	}
}

// Typed adapts a converter for one concrete block type to BlockConverter.
func Typed[T model.Block](fn func(*Walker, T) ([]*html.Node, error)) BlockConverter {
	return func(w *Walker, b model.Block) ([]*html.Node, error) {
		v, ok := b.(T)
		if !ok {
			return nil, fmt.Errorf("%s block: unexpected fields %T", b.Kind(), b)
		}
		return fn(w, v)
	}
}
