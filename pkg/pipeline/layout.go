package pipeline

import (
	stderrors "errors"

	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
)

// ComputeLayout runs the grid layout for items sites. Infeasible layouts
// come back as INFEASIBLE_LAYOUT errors that still match
// layout.ErrInfeasible.
func ComputeLayout(items int, opts Options) (layout.Geometry, error) {
	g, err := layout.Compute(opts.Request(items), opts.Constants)
	if err != nil {
		var ie *layout.InfeasibleError
		if stderrors.As(err, &ie) {
			return layout.Geometry{}, errors.Wrap(errors.ErrCodeInfeasibleLayout, err,
				"%d sites do not fit a %gx%g panel", items, opts.Width, opts.Height)
		}
		return layout.Geometry{}, errors.Wrap(errors.ErrCodeInternal, err, "compute layout")
	}
	return g, nil
}

// IsInfeasible reports whether err means the sites do not fit the panel.
func IsInfeasible(err error) bool {
	return stderrors.Is(err, layout.ErrInfeasible)
}
