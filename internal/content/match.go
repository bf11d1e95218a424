package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// lookup follows a dotted path. Populated relations are compared by id.
func lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// scalar renders a JSON value for comparison. Populated documents compare
// by their id.
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		return idString(t["id"])
	}
	return fmt.Sprint(v)
}

// compareScalars orders timestamps chronologically, numbers numerically and
// everything else lexically.
func compareScalars(a, b string) int {
	if ta, err := time.Parse(time.RFC3339Nano, a); err == nil {
		if tb, err := time.Parse(time.RFC3339Nano, b); err == nil {
			return ta.Compare(tb)
		}
	}
	if fa, err := strconv.ParseFloat(a, 64); err == nil {
		if fb, err := strconv.ParseFloat(b, 64); err == nil {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(a, b)
}

// values flattens has-many fields so a filter matches when any element
// does.
func values(v any) []string {
	if list, ok := v.([]any); ok {
		out := make([]string, len(list))
		for i, e := range list {
			out[i] = scalar(e)
		}
		return out
	}
	return []string{scalar(v)}
}

func anyValue(v any, pred func(string) bool) bool {
	for _, s := range values(v) {
		if pred(s) {
			return true
		}
	}
	return false
}

func matchAll(doc map[string]any, where []Filter) (bool, error) {
	for _, f := range where {
		ok, err := match(doc, f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func match(doc map[string]any, f Filter) (bool, error) {
	v, present := lookup(doc, f.Field)
	present = present && v != nil
	switch f.Op {
	case Exists:
		return present == (f.Value != "false"), nil
	case Equals:
		return present && anyValue(v, func(s string) bool { return compareScalars(s, f.Value) == 0 }), nil
	case NotEquals:
		return !present || !anyValue(v, func(s string) bool { return compareScalars(s, f.Value) == 0 }), nil
	case In, NotIn:
		set := map[string]bool{}
		for _, s := range strings.Split(f.Value, ",") {
			set[strings.TrimSpace(s)] = true
		}
		hit := present && anyValue(v, func(s string) bool { return set[s] })
		return hit == (f.Op == In), nil
	case LessThan:
		return present && compareScalars(scalar(v), f.Value) < 0, nil
	case GreaterThan:
		return present && compareScalars(scalar(v), f.Value) > 0, nil
	case Like:
		needle := strings.ToLower(f.Value)
		return present && strings.Contains(strings.ToLower(scalar(v)), needle), nil
	}
	return false, fmt.Errorf("unsupported operator %q on %s", f.Op, f.Field)
}
