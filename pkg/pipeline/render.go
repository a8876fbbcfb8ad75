package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats, keyed by
// format. Rendering is cheap next to ordering, so artifacts are not cached.
func (r *Runner) Render(ctx context.Context, g *csr.Graph, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Pin: opts.Pin})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			svg, err := nodelink.RenderSVG(ctx, dot, opts.Layout)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
			}
			artifacts[format] = svg
		}
	}

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"layout", opts.Layout,
		"duration", time.Since(start))
	return artifacts, nil
}
