package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/columnview/pkg/cache"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/observability"
	"github.com/matzehuels/columnview/pkg/render"
	"github.com/matzehuels/columnview/pkg/render/columns"
	"github.com/matzehuels/columnview/pkg/render/lines"
	"github.com/matzehuels/columnview/pkg/render/nodelink"
)

const keyTypeRender = "render"

// Render paints a layout result in the given format.
// Rendered bytes are cached by graph hash and format.
func (r *Runner) Render(ctx context.Context, graphID int, res *Result, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeInvalidInput, err, "invalid format %q", format)
	}

	cacheKey := ""
	if res.GraphHash != "" && format != FormatJSON {
		cacheKey = r.Keyer.RenderKey(res.GraphHash, format)
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeRender)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeRender)
	}

	start := time.Now()
	data, err := RenderResult(ctx, graphID, res, format)
	res.Stats.RenderTime = time.Since(start)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", res.Stats.RenderTime)

	if cacheKey != "" {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayeringTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeRender, len(data))
		}
	}
	return data, nil
}

// View exports a layout result with connector segments projected from the
// default column grid.
func View(graphID int, res *Result) graph.View {
	view := graph.NewView(graphID, res.Index, res.Layering, nil)
	grid := columns.Measure(res.Layering, view.Name, columns.Options{})
	view.Segments = lines.Project(res.Layering, res.Index.Edges(), grid.Rects)
	return view
}

// RenderResult paints a layout result without caching.
func RenderResult(ctx context.Context, graphID int, res *Result, format string) ([]byte, error) {
	view := graph.NewView(graphID, res.Index, res.Layering, nil)

	switch format {
	case FormatColumns:
		return columns.RenderSVG(view, res.Index.Edges(), columns.Options{}), nil
	case FormatPNG:
		svg := columns.RenderSVG(view, res.Index.Edges(), columns.Options{})
		data, err := render.ToPNG(svg, 2)
		if err != nil {
			return nil, cverr.Wrap(cverr.ErrCodeInternal, err, "png export")
		}
		return data, nil
	case FormatPDF:
		svg := columns.RenderSVG(view, res.Index.Edges(), columns.Options{})
		data, err := render.ToPDF(svg)
		if err != nil {
			return nil, cverr.Wrap(cverr.ErrCodeInternal, err, "pdf export")
		}
		return data, nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(res.Index, res.Layering, nodelink.Options{})), nil
	case FormatGraphviz:
		data, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(res.Index, res.Layering, nodelink.Options{}))
		if err != nil {
			return nil, cverr.Wrap(cverr.ErrCodeInternal, err, "graphviz render")
		}
		return data, nil
	case FormatJSON:
		return graph.MarshalView(View(graphID, res))
	default:
		return nil, cverr.New(cverr.ErrCodeInvalidInput, "invalid format %q", format)
	}
}
