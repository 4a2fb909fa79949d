package appearance

import (
	"net/url"
	"strings"
)

// ThemeParam is the deep link query parameter.
const ThemeParam = "theme"

// ThemeFromURL returns the theme query parameter of a URL or a bare query
// string ("?theme=x" or "theme=x"). It returns "" when there is none or raw
// does not parse.
func ThemeFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	query := raw
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "/") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		query = u.RawQuery
	} else if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}
	return values.Get(ThemeParam)
}

// DeepLink returns base with the theme parameter set to id. An empty base
// gives a bare "?theme=<id>" query.
func DeepLink(base, id string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(ThemeParam, id)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
