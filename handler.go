package promise

// Option configures a single Map, MapReports, or Sink call.
type Option func(*continuationConfig)

type continuationConfig struct {
	exec   Executor
	policy Policy
	logger Logger
}

func resolveConfig(opts []Option) continuationConfig {
	cfg := continuationConfig{exec: Inline, policy: defaultPolicy, logger: defaultLogger}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithExecutor routes the continuation body through exec instead of
// running inline on whichever goroutine triggers the dispatch.
func WithExecutor(exec Executor) Option {
	if exec == nil {
		exec = Inline
	}
	return func(c *continuationConfig) { c.exec = exec }
}

// WithPolicy overrides the default panic/error Policy for one call.
func WithPolicy(p Policy) Option {
	return func(c *continuationConfig) { c.policy = p }
}

// WithLogger overrides the default Logger for one call.
func WithLogger(l Logger) Option {
	return func(c *continuationConfig) { c.logger = l }
}

// mapCallback is the shape Map's user-supplied function takes: runs
// only on success, produces the downstream outcome from the value.
type mapCallback[T, U any] func(T) Report[U]

// reportsCallback is the shape MapReports' user-supplied function
// takes: always runs, sees the raw Report, produces the downstream
// outcome. It's the only continuation kind that can recover from an
// upstream error.
type reportsCallback[T, U any] func(Report[T]) Report[U]

// sinkCallback is the shape Sink's user-supplied function takes:
// always runs, terminal, produces nothing.
type sinkCallback[T any] func(Report[T])

// Map chains a continuation that only runs on success. An upstream
// failure passes straight through without invoking fn.
func Map[T, U any](h Handle[T], fn mapCallback[T, U], opts ...Option) Handle[U] {
	cfg := resolveConfig(opts)
	down := newCell[U]()
	h.c.install(func(r Report[T]) {
		cfg.exec.Submit(func() {
			defer recoverPanicPolicy(cfg.logger, cfg.policy, "Map")
			if !r.Ok() {
				down.fail(r.Err())
				return
			}
			down.finish(fn(r.Val()))
		})
	})
	return Handle[U]{c: down}
}

// MapReports chains a continuation that always runs, and is handed the
// raw upstream Report rather than just its value. Unlike Map, it can
// turn an upstream failure into a downstream success.
func MapReports[T, U any](h Handle[T], fn reportsCallback[T, U], opts ...Option) Handle[U] {
	cfg := resolveConfig(opts)
	down := newCell[U]()
	h.c.install(func(r Report[T]) {
		cfg.exec.Submit(func() {
			defer recoverPanicPolicy(cfg.logger, cfg.policy, "MapReports")
			down.finish(fn(r))
		})
	})
	return Handle[U]{c: down}
}

// Sink installs a terminal continuation: it always runs, and produces
// no downstream Handle. A panic inside fn is handled according to the
// configured Policy rather than propagated to the dispatching
// goroutine.
func (h Handle[T]) Sink(fn sinkCallback[T], opts ...Option) {
	cfg := resolveConfig(opts)
	h.c.install(func(r Report[T]) {
		cfg.exec.Submit(func() {
			defer recoverPanicPolicy(cfg.logger, cfg.policy, "Sink")
			fn(r)
		})
	})
}
