package http

import (
	"net/url"
	"strings"
)

// Match reports whether path fits pattern and returns the captured variables
// Segment counts must be equal, literal segments compare exactly and ":name"
// segments capture the percent-decoded value. A later duplicate name wins
func Match(pattern, path string) (map[string]string, bool) {
	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return nil, false
	}

	vars := map[string]string{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			v, err := url.PathUnescape(got[i])
			if err != nil {
				return nil, false
			}
			vars[name] = v
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return vars, true
}
