// Package flatten converts nested JSON localization objects to and from a
// flat mapping of dot-joined key paths to leaf values.
package flatten

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Flatten parses a JSON object of arbitrary depth and returns a mapping from
// dot-joined key paths to leaf values. String leaves pass through unchanged,
// numbers and booleans are coerced to their literal text, null becomes the
// empty string. Arrays are rejected. Top-level keys starting with '$'
// (metadata like $schema) are skipped. A key containing a dot is rejected
// because it would be ambiguous when the mapping is nested again.
func Flatten(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be an object")
	}
	out := map[string]string{}
	if err := walk(obj, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(obj map[string]any, prefix string, out map[string]string) error {
	for k, v := range obj {
		if prefix == "" && strings.HasPrefix(k, "$") {
			continue
		}
		if strings.Contains(k, ".") {
			return fmt.Errorf("key %q contains a dot", joinPath(prefix, k))
		}
		path := joinPath(prefix, k)
		switch val := v.(type) {
		case map[string]any:
			if err := walk(val, path, out); err != nil {
				return err
			}
		case string:
			out[path] = val
		case json.Number:
			out[path] = val.String()
		case bool:
			out[path] = strconv.FormatBool(val)
		case nil:
			out[path] = ""
		default:
			return fmt.Errorf("unsupported value at %q (arrays are not allowed)", path)
		}
	}
	return nil
}

func joinPath(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + "." + k
}

// Nest reverses Flatten: it rebuilds the nested JSON object from a flat
// path → value mapping and renders it with sorted keys and two-space
// indentation. A path that is both a leaf and a prefix of another path
// ("a" vs "a.b") is a collision and returns an error.
func Nest(flat map[string]string) ([]byte, error) {
	root := map[string]any{}
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if p == "" {
			return nil, fmt.Errorf("empty key path")
		}
		segs := strings.Split(p, ".")
		cur := root
		for i, seg := range segs {
			if seg == "" {
				return nil, fmt.Errorf("key path %q has an empty segment", p)
			}
			if i == len(segs)-1 {
				if _, exists := cur[seg]; exists {
					return nil, fmt.Errorf("key path collision at %q", p)
				}
				cur[seg] = flat[p]
				continue
			}
			next, exists := cur[seg]
			if !exists {
				m := map[string]any{}
				cur[seg] = m
				cur = m
				continue
			}
			m, ok := next.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("key path collision at %q", strings.Join(segs[:i+1], "."))
			}
			cur = m
		}
	}
	return json.MarshalIndent(root, "", "  ")
}
