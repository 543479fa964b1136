package errors

import (
	"math"
	"net/url"
	"strings"
	"unicode"
)

// MaxDimension bounds panel width and height accepted from callers.
const MaxDimension = 20000

// MaxSiteIDLength bounds the length of a site identifier.
const MaxSiteIDLength = 128

// ValidateDimensions checks panel dimensions supplied by a caller.
// Dimensions must be finite, non-negative and at most MaxDimension. Small
// panels are valid here; whether they can hold a layout is decided by the
// layout engine.
func ValidateDimensions(width, height float64) error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return New(ErrCodeInvalidDimensions, "%s must be a finite number", v.name)
		}
		if v.val < 0 {
			return New(ErrCodeInvalidDimensions, "%s cannot be negative", v.name)
		}
		if v.val > MaxDimension {
			return New(ErrCodeInvalidDimensions, "%s too large (max %d)", v.name, MaxDimension)
		}
	}
	return nil
}

// ValidateSiteID validates a site identifier. Site IDs end up in URLs, SVG
// element IDs and cache keys, so the rules are conservative:
//   - No empty IDs
//   - No whitespace or control characters
//   - No quotes or angle brackets
//   - Maximum length of MaxSiteIDLength characters
func ValidateSiteID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSite, "site id cannot be empty")
	}
	if len(id) > MaxSiteIDLength {
		return New(ErrCodeInvalidSite, "site id too long (max %d characters)", MaxSiteIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSite, "site id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `"'<>&`) {
		return New(ErrCodeInvalidSite, "site id %q contains markup characters", id)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// Absolute URLs must use http or https; relative references such as
// "view.py?view_name=site" are accepted.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
