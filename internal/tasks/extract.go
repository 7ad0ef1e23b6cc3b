package tasks

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/moodsplit/moodsplit/internal/shared"
)

// ExtractPlaylistID parses a user-supplied playlist reference into a canonical
// playlist identifier.
//
// Accepts either a bare playlist ID or a URL carrying a "list" query parameter
// (watch and playlist URLs both qualify). Pure: no I/O, no side effects.
func ExtractPlaylistID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", shared.ErrInvalidReference)
	}

	if strings.Contains(ref, "://") || strings.Contains(ref, "list=") {
		parsed, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrInvalidReference, err)
		}

		if id := parsed.Query().Get("list"); id != "" {
			return id, nil
		}

		return "", fmt.Errorf("%w: no list parameter in URL", shared.ErrInvalidReference)
	}

	if !isPlaylistID(ref) {
		return "", fmt.Errorf("%w: '%s' is not a playlist ID or URL", shared.ErrInvalidReference, ref)
	}

	return ref, nil
}

// isPlaylistID reports whether s looks like a provider-assigned playlist ID.
// IDs are opaque but restricted to URL-safe base64 characters.
func isPlaylistID(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
