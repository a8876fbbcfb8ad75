package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/relabel/pkg/arrangement"
	"github.com/matzehuels/relabel/pkg/cache"
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/csr/transform"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/observability"
	"github.com/matzehuels/relabel/pkg/ordering"
	"github.com/matzehuels/relabel/pkg/perm"
	"github.com/matzehuels/relabel/pkg/report"
)

// Cache key types reported to observability hooks.
const (
	keyTypeReport   = "report"
	keyTypeOrdering = "ordering"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger and registry - it
// doesn't store results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Registry overrides the plugins. When nil, each run builds
	// ordering.DefaultRegistry from its options.
	Registry *ordering.Registry

	// TTL overrides cache.TTLReport and cache.TTLOrdering when positive.
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

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g *csr.Graph, opts Options) (*report.Report, error) {
	rep, _, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	return rep, err
}

// AnalyzeWithCacheInfo runs the selected bounds and orderers concurrently and
// returns the report together with whether it came from the cache.
//
// Plugins that are unavailable for g, or fail, are recorded in the report
// instead of failing the run. A disconnected graph, an unknown plugin name
// or a cancelled context fails the run.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g *csr.Graph, opts Options) (*report.Report, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	reg := r.registry(opts)
	orderNames, boundNames := opts.Orderers, opts.Bounds
	if len(orderNames) == 0 {
		orderNames = reg.Names()
	}
	if len(boundNames) == 0 {
		boundNames = reg.BounderNames()
	}
	orderers, err := reg.Orderers(orderNames)
	if err != nil {
		return nil, false, err
	}
	bounders, err := reg.Bounders(boundNames)
	if err != nil {
		return nil, false, err
	}
	if err := checkConnected(g); err != nil {
		return nil, false, err
	}

	graphHash := cache.GraphHash(g)
	cacheKey := r.Keyer.ReportKey(graphHash, opts.KeyOpts(orderNames, boundNames))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if rep, err := report.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeReport)
				rep.Name = opts.Name
				return rep, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeReport)
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, g.VertexCount(), g.EdgeCount())

	rep, err := r.analyze(ctx, g, orderers, bounders, opts)
	hooks.OnAnalyzeComplete(ctx, g.VertexCount(), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	rep.ID = uuid.NewString()
	rep.Name = opts.Name
	rep.GraphHash = graphHash
	rep.CreatedAt = time.Now().UTC()

	if best, ok := rep.Best(); ok {
		opts.Logger.Info("analyzed graph",
			"vertices", rep.Vertices,
			"edges", rep.Edges,
			"best", best.Name,
			"cost", best.Cost,
			"lower_bound", rep.LowerBound(),
			"duration", time.Since(start))
	}

	if data, err := rep.Marshal(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLReport)); err != nil {
			opts.Logger.Warn("cache report", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeReport, len(data))
		}
	}
	return rep, false, nil // Cache miss
}

// analyze fills one slot per plugin so the report order matches the request
// order regardless of which goroutine finishes first.
func (r *Runner) analyze(ctx context.Context, g *csr.Graph, orderers []ordering.Orderer, bounders []ordering.Bounder, opts Options) (*report.Report, error) {
	bounds := make([]report.Bound, len(bounders))
	orderings := make([]report.Ordering, len(orderers))
	hooks := observability.Pipeline()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	for i, b := range bounders {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			lb, err := ordering.RunBound(b, g)
			d := time.Since(start)
			hooks.OnBoundComplete(ctx, b.Name(), lb, d, err)
			bounds[i] = report.Bound{Name: b.Name(), Value: lb}
			if err != nil {
				if !errors.IsSkippable(err) {
					return err
				}
				bounds[i] = report.Bound{Name: b.Name(), Skipped: reason(err)}
				opts.Logger.Debug("bound skipped", "bound", b.Name(), "reason", bounds[i].Skipped)
				return nil
			}
			opts.Logger.Debug("computed bound", "bound", b.Name(), "value", lb, "duration", d)
			return nil
		})
	}

	for i, o := range orderers {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := order(g, o)
			hooks.OnOrderComplete(ctx, o.Name(), res.Cost, res.Duration, err)
			orderings[i] = res
			if err != nil {
				return err
			}
			switch {
			case res.Skipped != "":
				opts.Logger.Debug("orderer skipped", "orderer", o.Name(), "reason", res.Skipped)
			case res.Error != "":
				opts.Logger.Warn("orderer failed", "orderer", o.Name(), "err", res.Error)
			default:
				opts.Logger.Debug("computed ordering", "orderer", o.Name(), "cost", res.Cost, "duration", res.Duration)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &report.Report{
		Vertices:  g.VertexCount(),
		Edges:     g.EdgeCount(),
		MaxDegree: g.MaxDegree(),
		Bounds:    bounds,
		Orderings: orderings,
	}, nil
}

// order runs one orderer and prices its permutation. Unavailable and failed
// orderers are reported in the result with a nil error.
func order(g *csr.Graph, o ordering.Orderer) (report.Ordering, error) {
	res := report.Ordering{Name: o.Name()}
	start := time.Now()
	p, err := ordering.Run(o, g)
	if err == nil {
		res.Cost, err = arrangement.CostUnder(g, p)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeOrdererFailed, err, "orderer %s", o.Name())
		}
	}
	res.Duration = time.Since(start)

	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, errors.ErrCodeOrdererUnavailable):
		res.Skipped = reason(err)
		return res, nil
	case errors.Is(err, errors.ErrCodeOrdererFailed):
		res.Error = reason(err)
		return res, nil
	default:
		return res, err
	}
}

// Order is a convenience wrapper that calls OrderWithCacheInfo and discards the cache hit info.
func (r *Runner) Order(ctx context.Context, g *csr.Graph, name string, opts Options) (perm.Permutation, error) {
	p, _, err := r.OrderWithCacheInfo(ctx, g, name, opts)
	return p, err
}

// OrderWithCacheInfo computes the named orderer's permutation with caching
// and returns cache hit info. Unlike Analyze, an unavailable or failing
// orderer is an error here.
func (r *Runner) OrderWithCacheInfo(ctx context.Context, g *csr.Graph, name string, opts Options) (perm.Permutation, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return perm.Permutation{}, false, err
	}
	if name == "" {
		name = DefaultOrderer
	}
	o, err := r.registry(opts).Lookup(name)
	if err != nil {
		return perm.Permutation{}, false, err
	}
	if err := checkConnected(g); err != nil {
		return perm.Permutation{}, false, err
	}

	cacheKey := r.Keyer.OrderingKey(cache.GraphHash(g), name, opts.KeyOpts(nil, nil))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var newToOld []int
			if json.Unmarshal(data, &newToOld) == nil && len(newToOld) == g.VertexCount() {
				if p, err := perm.New(newToOld); err == nil {
					observability.Cache().OnCacheHit(ctx, keyTypeOrdering)
					return p, true, nil // Cache hit
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeOrdering)
	}

	start := time.Now()
	newToOld, err := ordering.Run(o, g)
	if err != nil {
		return perm.Permutation{}, false, err
	}
	p, err := perm.New(newToOld)
	if err != nil {
		return perm.Permutation{}, false, errors.Wrap(errors.ErrCodeOrdererFailed, err, "orderer %s", name)
	}
	opts.Logger.Debug("computed ordering", "orderer", name, "duration", time.Since(start))

	if data, err := json.Marshal(newToOld); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLOrdering)); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeOrdering, len(data))
		}
	}
	return p, false, nil // Cache miss
}

// Reorder relabels g with the named orderer (DefaultOrderer if empty).
// Coordinates, if any, follow their vertices.
func (r *Runner) Reorder(ctx context.Context, g *csr.Graph, name string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if name == "" {
		name = DefaultOrderer
	}
	p, hit, err := r.OrderWithCacheInfo(ctx, g, name, opts)
	if err != nil {
		return nil, err
	}
	h, err := transform.ReorderWithCoordinates(g, p.NewToOld())
	if err != nil {
		return nil, err
	}
	res := &Result{
		Graph:       h,
		Orderer:     name,
		Permutation: p,
		CostBefore:  arrangement.Cost(g),
		CostAfter:   arrangement.Cost(h),
		CacheHit:    hit,
	}
	opts.Logger.Info("reordered graph",
		"orderer", name,
		"vertices", h.VertexCount(),
		"cost_before", res.CostBefore,
		"cost_after", res.CostAfter)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) registry(opts Options) *ordering.Registry {
	if r.Registry != nil {
		return r.Registry
	}
	return ordering.DefaultRegistry(opts.RegistryOptions())
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// checkConnected rejects graphs a single search cannot cover.
func checkConnected(g *csr.Graph) error {
	_, err := transform.Layering(g, 0)
	return err
}

// reason extracts the innermost coded message from err, with any uncoded
// cause appended.
func reason(err error) string {
	msg := err.Error()
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		ce, ok := e.(*errors.Error)
		if !ok {
			continue
		}
		msg = ce.Message
		if ce.Cause != nil {
			if _, coded := ce.Cause.(*errors.Error); !coded {
				msg += ": " + ce.Cause.Error()
			}
		}
	}
	return msg
}
