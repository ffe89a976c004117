// Package dropzone turns terminal drag-and-drop gestures into file drops.
//
// Terminals paste the path of a file dragged onto the window, so a paste that
// names an existing file is treated as a drop. A watched folder gives the
// same gesture for file managers that copy instead of paste.
package dropzone

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ParseDroppedPath reports whether pasted text is the path of one existing
// regular file and returns it cleaned. Surrounding quotes, shell backslash
// escapes, a file:// prefix and a leading ~ are accepted. An unquoted path
// must be absolute once expanded, so a bare word is never a drop.
func ParseDroppedPath(text string) (string, bool) {
	p := strings.TrimSpace(text)
	if p == "" || strings.ContainsAny(p, "\r\n") {
		return "", false
	}

	quoted := false
	switch {
	case len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0]:
		p = p[1 : len(p)-1]
		quoted = true
	case strings.HasPrefix(p, "file://"):
		u, err := url.Parse(p)
		if err != nil {
			return "", false
		}
		p = u.Path
	default:
		p = unescape(p)
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		p = filepath.Join(home, p[1:])
	}
	if !quoted && !filepath.IsAbs(p) {
		return "", false
	}

	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return filepath.Clean(p), true
}

// unescape drops shell escaping such as "My\ Paper.pdf".
func unescape(s string) string {
	if !strings.Contains(s, `\ `) && !strings.Contains(s, `\(`) && !strings.Contains(s, `\'`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
