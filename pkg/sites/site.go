package sites

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/siteoverview/pkg/errors"
)

// Render modes of an overview.
const (
	ModeSites = "sites"
	ModeHosts = "hosts"
)

// State is the aggregated health of a site.
type State string

// Site states, from best to worst.
const (
	StateOK       State = "ok"
	StateDowntime State = "downtime"
	StateWarning  State = "warning"
	StateCritical State = "critical"
)

// Site is one monitored site.
type Site struct {
	ID              string `json:"site_id" toml:"site_id" bson:"site_id"`
	Name            string `json:"name,omitempty" toml:"name" bson:"name,omitempty"`
	Title           string `json:"title,omitempty" toml:"title" bson:"title,omitempty"`
	CountWarning    int    `json:"count_warning" toml:"count_warning" bson:"count_warning"`
	CountCritical   int    `json:"count_critical" toml:"count_critical" bson:"count_critical"`
	CountInDowntime int    `json:"count_in_downtime" toml:"count_in_downtime" bson:"count_in_downtime"`
	// URL overrides the link built by a LinkBuilder.
	URL string `json:"url,omitempty" toml:"url" bson:"url,omitempty"`
}

// DisplayTitle returns the label shown under the marker.
func (s Site) DisplayTitle() string {
	switch {
	case s.Title != "":
		return s.Title
	case s.Name != "":
		return s.Name
	default:
		return s.ID
	}
}

// State derives the site state from its problem counts.
func (s Site) State() State {
	switch {
	case s.CountCritical > 0:
		return StateCritical
	case s.CountWarning > 0:
		return StateWarning
	case s.CountInDowntime > 0:
		return StateDowntime
	default:
		return StateOK
	}
}

// Validate checks a single site record.
func (s Site) Validate() error {
	if err := errors.ValidateSiteID(s.ID); err != nil {
		return err
	}
	if s.CountWarning < 0 || s.CountCritical < 0 || s.CountInDowntime < 0 {
		return errors.New(errors.ErrCodeInvalidSite, "site %q has negative counts", s.ID)
	}
	if s.URL != "" {
		if err := errors.ValidateURL(s.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSite, err, "site %q", s.ID)
		}
	}
	return nil
}

// Overview is the data of one site overview figure.
type Overview struct {
	Title      string `json:"title,omitempty" toml:"title"`
	RenderMode string `json:"render_mode,omitempty" toml:"render_mode"`
	Sites      []Site `json:"data" toml:"site"`
}

// Mode returns the render mode, defaulting to ModeSites.
func (o Overview) Mode() string {
	if o.RenderMode == "" {
		return ModeSites
	}
	return o.RenderMode
}

// Items returns the number of markers the overview draws. Host mode draws
// no markers.
func (o Overview) Items() int {
	if o.Mode() != ModeSites {
		return 0
	}
	return len(o.Sites)
}

// Validate checks the render mode and every site, and rejects duplicate IDs.
func (o Overview) Validate() error {
	switch o.Mode() {
	case ModeSites, ModeHosts:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid render_mode: %q (must be one of: sites, hosts)", o.RenderMode)
	}

	seen := make(map[string]struct{}, len(o.Sites))
	for i, s := range o.Sites {
		if err := s.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSite, err, "site #%d", i)
		}
		if _, dup := seen[s.ID]; dup {
			return errors.New(errors.ErrCodeInvalidSite, "duplicate site id: %s", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Counts returns how many sites are in each state.
func (o Overview) Counts() map[State]int {
	out := make(map[State]int, 4)
	for _, s := range o.Sites {
		out[s.State()]++
	}
	return out
}

// Hash returns a SHA-256 content hash of the overview, used in cache keys.
func Hash(o Overview) string {
	data, _ := json.Marshal(o)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
