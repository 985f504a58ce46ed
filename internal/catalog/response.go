package catalog

import (
	"fmt"
	"strings"

	"ssmt/internal/services"
)

// step addresses one level of the decoded catalog document: an object key
// or, when key is empty, an array index.
type step struct {
	key   string
	index int
}

func (s step) String() string {
	if s.key == "" {
		return fmt.Sprintf("[%d]", s.index)
	}
	return s.key
}

// mediaPath returns the path to data.game_info_list[0].backgrounds[0].<media>.url.
func mediaPath(kind string) []step {
	return []step{
		{key: "data"},
		{key: "game_info_list"},
		{index: 0},
		{key: "backgrounds"},
		{index: 0},
		{key: mediaKey(kind)},
		{key: "url"},
	}
}

func formatPath(steps []step) string {
	var b strings.Builder
	for i, s := range steps {
		if s.key != "" && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

func extractMediaURL(doc any, kind string) (string, error) {
	steps := mediaPath(kind)
	cur := doc
	for i, s := range steps {
		var ok bool
		if s.key != "" {
			var obj map[string]any
			if obj, ok = cur.(map[string]any); ok {
				cur, ok = obj[s.key]
			}
		} else {
			var arr []any
			if arr, ok = cur.([]any); ok && s.index < len(arr) {
				cur = arr[s.index]
			} else {
				ok = false
			}
		}
		if !ok || cur == nil {
			return "", services.Wrap(services.ErrParse, "catalog", "read response",
				fmt.Sprintf("missing %s", formatPath(steps[:i+1])), nil)
		}
	}
	url, ok := cur.(string)
	if !ok || strings.TrimSpace(url) == "" {
		return "", services.Wrap(services.ErrParse, "catalog", "read response",
			fmt.Sprintf("%s is not a non-empty string", formatPath(steps)), nil)
	}
	return url, nil
}
