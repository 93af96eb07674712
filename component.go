package postboard

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

// ErrUnmounted is returned by Wait when the component was unmounted before
// its fetch settled.
var ErrUnmounted = errors.New("postboard: component unmounted")

// Component fetches users and posts once per mount and renders the outcome.
type Component struct {
	id       string
	cfg      *Config
	fetcher  *Fetcher
	renderer *Renderer
	logger   Logger
	view     *view

	mountOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewComponent(cfg *Config) *Component {
	cfg = cfg.withDefaults()

	return &Component{
		id:       uuid.New().String(),
		cfg:      cfg,
		fetcher:  NewFetcher(cfg),
		renderer: NewRenderer(cfg.Title),
		logger:   cfg.Logger,
		view:     newView(),
		cancel:   func() {},
	}
}

// ID identifies this component in logs and spans
func (c *Component) ID() string {
	return c.id
}

// Mount starts the fetch in the background. Only the first call has an
// effect; there is no refetch.
func (c *Component) Mount(ctx context.Context) {
	c.mountOnce.Do(func() {
		var fetchCtx context.Context
		if c.cfg.Timeout > 0 {
			fetchCtx, c.cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		} else {
			fetchCtx, c.cancel = context.WithCancel(ctx)
		}

		c.logger.Debugf("component %s: mounted", c.id)

		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.load(fetchCtx)
		}()
	})
}

func (c *Component) load(ctx context.Context) {
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, c.cfg.Tracer, "postboard:Component:load")
	span.SetTag("postboard.component", c.id)
	defer span.Finish()

	ds, err := c.fetcher.Fetch(ctx)

	var applied bool
	if err != nil {
		c.logger.Errorf("component %s: %v", c.id, err)
		applied = c.view.fail(ErrorMessage)
	} else {
		applied = c.view.ready(ds)
	}

	if !applied {
		c.logger.Debugf("component %s: result discarded after unmount", c.id)
		return
	}

	state := c.view.snapshot()
	c.logger.Infof("component %s: %s with %d cards", c.id, state.Phase, len(state.Cards))

	if c.cfg.OnSettle != nil {
		c.cfg.OnSettle(state)
	}
}

// State returns the current view state
func (c *Component) State() ViewState {
	return c.view.snapshot()
}

// Wait blocks until the fetch settles, the component is unmounted or ctx is
// done.
func (c *Component) Wait(ctx context.Context) (ViewState, error) {
	select {
	case <-c.view.done:
	case <-c.view.gone:
	case <-ctx.Done():
	}

	s := c.view.snapshot()
	if s.Phase != PhaseLoading {
		return s, nil
	}

	select {
	case <-c.view.gone:
		return s, ErrUnmounted
	default:
		return s, ctx.Err()
	}
}

// Render writes the current view state
func (c *Component) Render(w io.Writer) error {
	return c.renderer.Render(w, c.State())
}

// Unmount cancels an in-flight fetch and blocks until the fetch goroutine
// exits. State is frozen from here on.
func (c *Component) Unmount() {
	// a later Mount becomes a no-op and c.cancel is safe to read
	c.mountOnce.Do(func() {})

	c.view.teardown()
	c.cancel()
	c.wg.Wait()
	c.logger.Debugf("component %s: unmounted", c.id)
}
