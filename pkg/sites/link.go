package sites

import (
	"net/url"
)

// LinkBuilder builds the navigation target of a site marker by setting the
// "site" query parameter on Base, keeping all other parameters.
type LinkBuilder struct {
	Base string
}

// URL returns the link for s. A site's own URL wins; an empty Base yields no
// link.
func (b LinkBuilder) URL(s Site) string {
	if s.URL != "" {
		return s.URL
	}
	if b.Base == "" {
		return ""
	}
	u, err := url.Parse(b.Base)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("site", s.ID)
	u.RawQuery = q.Encode()
	return u.String()
}
