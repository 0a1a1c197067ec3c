package yahoo

import (
	"bytes"
	"sort"
	"strconv"

	sonic "github.com/bytedance/sonic"
)

// node decodes a Yahoo resource. The JSON flavour of the Fantasy API sends a
// resource as an array of fragments, and the first fragment is often itself
// an array of single-key objects. Every fragment is merged into one object
// before T is decoded; a plain object decodes as is.
type node[T any] struct {
	Value T
	Set   bool
}

func (n *node[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		n.Set = false
		return nil
	}

	var raw any
	if err := sonic.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	merged := make(map[string]any)
	flatten(raw, merged)

	encoded, err := sonic.Marshal(merged)
	if err != nil {
		return err
	}
	var value T
	if err := sonic.Unmarshal(encoded, &value); err != nil {
		return err
	}
	n.Value = value
	n.Set = true
	return nil
}

func flatten(value any, into map[string]any) {
	switch typed := value.(type) {
	case []any:
		for _, item := range typed {
			flatten(item, into)
		}
	case map[string]any:
		for key, item := range typed {
			into[key] = item
		}
	}
}

// collection decodes Yahoo's indexed maps, {"0": {"team": ...}, "count": 1},
// into a slice ordered by index. The wrapper key is ignored. Empty
// collections arrive as [] and decode to nil.
type collection[T any] []T

func (c *collection[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*c = nil
		return nil
	}

	var raw map[string]any
	if err := sonic.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	indexes := make([]int, 0, len(raw))
	for key := range raw {
		if index, err := strconv.Atoi(key); err == nil {
			indexes = append(indexes, index)
		}
	}
	sort.Ints(indexes)

	out := make([]T, 0, len(indexes))
	for _, index := range indexes {
		wrapper, ok := raw[strconv.Itoa(index)].(map[string]any)
		if !ok {
			continue
		}
		for _, inner := range wrapper {
			encoded, err := sonic.Marshal(inner)
			if err != nil {
				return err
			}
			var item T
			if err := sonic.Unmarshal(encoded, &item); err != nil {
				return err
			}
			out = append(out, item)
			break
		}
	}
	*c = out
	return nil
}
