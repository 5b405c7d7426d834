package pipeline

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/diagram"
	"github.com/matzehuels/jsonscope/pkg/diff"
	apperr "github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
	"github.com/matzehuels/jsonscope/pkg/observability"
	"github.com/matzehuels/jsonscope/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// MaxDepth limits container nesting when parsing. Zero means
	// jsonvalue.DefaultMaxDepth.
	MaxDepth int

	// TTL overrides cache.TTLDiagram and cache.TTLArtifact when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Parse decodes data into a value. Failures carry INVALID_EMPTY_INPUT or
// INVALID_JSON; the message is the decoder's text.
func (r *Runner) Parse(ctx context.Context, data []byte) (jsonvalue.Value, error) {
	var v jsonvalue.Value
	_, err := r.stage(ctx, observability.StageParse, func() error {
		var err error
		v, err = jsonvalue.ParseWithOptions(bytes.NewReader(data), jsonvalue.ParseOptions{MaxDepth: r.MaxDepth})
		return err
	})
	if err != nil {
		return nil, parseError(err)
	}
	return v, nil
}

func parseError(err error) error {
	if errors.Is(err, jsonvalue.ErrEmptyInput) {
		return apperr.Wrap(apperr.ErrCodeEmptyInput, err, "%s", err.Error())
	}
	return apperr.Wrap(apperr.ErrCodeInvalidJSON, err, "%s", err.Error())
}

// Inspect parses data and builds its GraphNode tree.
func (r *Runner) Inspect(ctx context.Context, data []byte) (*Inspection, error) {
	start := time.Now()
	v, err := r.Parse(ctx, data)
	if err != nil {
		return nil, err
	}
	parseTime := time.Since(start)

	ins := r.inspectValue(ctx, v)
	ins.Stats.ParseTime = parseTime
	return ins, nil
}

func (r *Runner) inspectValue(ctx context.Context, v jsonvalue.Value) *Inspection {
	ins := &Inspection{
		Value: v,
		Hash:  cache.Hash([]byte(jsonvalue.Compact(v))),
	}
	ins.Stats.TransformTime, _ = r.stage(ctx, observability.StageTransform, func() error {
		ins.Root = tree.Transform(v)
		return nil
	})

	tree.Walk(ins.Root, func(n *tree.Node) bool {
		ins.Stats.Nodes++
		ins.Stats.Depth = max(ins.Stats.Depth, n.Depth())
		return true
	})
	observability.Pipeline().OnTransform(ctx, ins.Stats.Nodes, ins.Stats.Depth)

	r.Logger.Debug("transformed",
		"nodes", ins.Stats.Nodes,
		"depth", ins.Stats.Depth,
		"duration", ins.Stats.TransformTime)
	return ins
}

// DiagramWithCacheInfo generates diagram source for data and reports whether
// it came from the cache.
func (r *Runner) DiagramWithCacheInfo(ctx context.Context, data []byte, opts DiagramOptions) (string, bool, error) {
	opts.setDefaults()
	if err := apperr.ValidateFormat(opts.Format, apperr.DiagramFormats); err != nil {
		return "", false, err
	}
	if err := apperr.ValidateTheme(opts.Theme); err != nil {
		return "", false, err
	}

	ins, err := r.Inspect(ctx, data)
	if err != nil {
		return "", false, err
	}
	return r.diagram(ctx, ins, opts)
}

// DiagramFromInspection is DiagramWithCacheInfo for an already inspected
// document.
func (r *Runner) DiagramFromInspection(ctx context.Context, ins *Inspection, opts DiagramOptions) (string, bool, error) {
	opts.setDefaults()
	if err := apperr.ValidateFormat(opts.Format, apperr.DiagramFormats); err != nil {
		return "", false, err
	}
	if err := apperr.ValidateTheme(opts.Theme); err != nil {
		return "", false, err
	}
	return r.diagram(ctx, ins, opts)
}

func (r *Runner) diagram(ctx context.Context, ins *Inspection, opts DiagramOptions) (string, bool, error) {
	palette, err := diagram.Theme(opts.Theme)
	if err != nil {
		return "", false, err
	}
	key := r.Keyer.DiagramKey(ins.Hash, opts.keyOpts())

	if !opts.Refresh {
		if src, ok := r.lookup(ctx, "diagram", key); ok {
			return string(src), true, nil
		}
	}

	var src string
	d, _ := r.stage(ctx, observability.StageDiagram, func() error {
		g := diagram.Build(ins.Root)
		if opts.Format == FormatDOT {
			src = g.DOT(palette)
		} else {
			src = g.Mermaid(palette)
		}
		return nil
	})
	r.Logger.Debug("generated diagram", "format", opts.Format, "bytes", len(src), "duration", d)

	r.store(ctx, "diagram", key, []byte(src), cache.TTLDiagram)
	return src, false, nil
}

// Diagram is a convenience wrapper that calls DiagramWithCacheInfo and discards the cache hit info.
func (r *Runner) Diagram(ctx context.Context, data []byte, opts DiagramOptions) (string, error) {
	src, _, err := r.DiagramWithCacheInfo(ctx, data, opts)
	return src, err
}

// RenderWithCacheInfo renders data as an image and reports whether it came
// from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, data []byte, opts RenderOptions) ([]byte, bool, error) {
	opts.setDefaults()
	if err := apperr.ValidateFormat(opts.Format, apperr.RenderFormats); err != nil {
		return nil, false, err
	}
	if err := apperr.ValidateTheme(opts.Theme); err != nil {
		return nil, false, err
	}

	ins, err := r.Inspect(ctx, data)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(ins.Hash, opts.keyOpts())

	if !opts.Refresh {
		if img, ok := r.lookup(ctx, "artifact", key); ok {
			return img, true, nil
		}
	}

	dot, _, err := r.diagram(ctx, ins, DiagramOptions{
		Format:  FormatDOT,
		Theme:   opts.Theme,
		Refresh: opts.Refresh,
	})
	if err != nil {
		return nil, false, err
	}

	var img []byte
	d, err := r.stage(ctx, observability.StageRender, func() error {
		var err error
		if opts.Format == FormatPNG {
			img, err = diagram.RenderPNG(ctx, dot)
		} else {
			img, err = diagram.RenderSVG(ctx, dot)
		}
		return err
	})
	if err != nil {
		return nil, false, err
	}
	r.Logger.Info("rendered diagram", "format", opts.Format, "bytes", len(img), "duration", d)

	r.store(ctx, "artifact", key, img, cache.TTLArtifact)
	return img, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, data []byte, opts RenderOptions) ([]byte, error) {
	img, _, err := r.RenderWithCacheInfo(ctx, data, opts)
	return img, err
}

// Compare parses both documents and diffs them. A blank input fails with
// [MissingInputMessage]; a malformed one fails with a [SideError] naming
// the panel.
func (r *Runner) Compare(ctx context.Context, left, right []byte) (diff.Result, error) {
	if len(bytes.TrimSpace(left)) == 0 || len(bytes.TrimSpace(right)) == 0 {
		return diff.Result{}, apperr.New(apperr.ErrCodeEmptyInput, MissingInputMessage)
	}

	lv, err := r.parseSide(ctx, SideLeft, left)
	if err != nil {
		return diff.Result{}, err
	}
	rv, err := r.parseSide(ctx, SideRight, right)
	if err != nil {
		return diff.Result{}, err
	}

	var res diff.Result
	d, _ := r.stage(ctx, observability.StageCompare, func() error {
		res = diff.Compare(lv, rv)
		return nil
	})
	s := res.Stats
	observability.Pipeline().OnCompare(ctx, s.Added, s.Removed, s.Modified, s.Unchanged)
	r.Logger.Debug("compared documents",
		"added", s.Added,
		"removed", s.Removed,
		"modified", s.Modified,
		"unchanged", s.Unchanged,
		"duration", d)
	return res, nil
}

func (r *Runner) parseSide(ctx context.Context, side string, data []byte) (jsonvalue.Value, error) {
	v, err := r.Parse(ctx, data)
	if err != nil {
		var perr *jsonvalue.ParseError
		if errors.As(err, &perr) {
			err = perr
		}
		se := &SideError{Side: side, Err: err}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidJSON, se, "%s", se.Error())
	}
	return v, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// stage runs fn between pipeline hook events and returns its duration.
func (r *Runner) stage(ctx context.Context, s observability.Stage, fn func() error) (time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, s)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, s, d, err)
	return d, err
}

func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
