// Package sites models the monitored sites shown in a site overview.
//
// An [Overview] is the data behind one dashboard figure: a title, a render
// mode and the ordered list of [Site] records. The order of Sites is the
// order markers are placed in; nothing in this package reorders them.
//
// Overviews are read from JSON (the figure's wire format) or TOML inventory
// files:
//
//	ov, err := sites.ReadFile("sites.toml")
//
// JSON follows the figure data format:
//
//	{
//	  "title": "Sites",
//	  "render_mode": "sites",
//	  "data": [
//	    {"site_id": "munich", "name": "munich", "title": "Munich",
//	     "count_warning": 2, "count_critical": 0, "count_in_downtime": 1}
//	  ]
//	}
//
// TOML uses one [[site]] table per site with the same keys.
package sites
