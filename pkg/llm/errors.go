package llm

import (
	"errors"
	"strings"
)

// Sentinel errors providers can wrap so callers do not have to rely on
// message sniffing.
var (
	// ErrRateLimited marks quota or permission rejections tied to the API key.
	ErrRateLimited = errors.New("llm: rate limited")

	// ErrModelUnavailable marks errors tied to the requested model itself.
	ErrModelUnavailable = errors.New("llm: model unavailable")
)

var rateLimitMarkers = []string{"429", "resource", "exhausted", "quota", "403", "permission"}

var modelErrorMarkers = []string{"404", "not found", "support", "bad request"}

// IsRateLimited reports whether err looks like a per-key quota failure.
// Providers that return raw HTTP errors are classified by message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	return containsAny(strings.ToLower(err.Error()), rateLimitMarkers)
}

// IsModelUnavailable reports whether err points at the model rather than
// the key. Checked after IsRateLimited since the marker sets overlap in
// some provider messages.
func IsModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrModelUnavailable) {
		return true
	}
	return containsAny(strings.ToLower(err.Error()), modelErrorMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
