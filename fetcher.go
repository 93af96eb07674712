package postboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/json-iterator/go"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
	"golang.org/x/sync/errgroup"
)

// ErrFetch is returned for every fetch failure. Transport errors, non-2xx
// statuses and malformed bodies are not told apart.
var ErrFetch = errors.New("postboard: fetch users and posts")

// Fetcher loads users and posts from two JSON endpoints
type Fetcher struct {
	usersURL string
	postsURL string
	client   *http.Client
	tracer   opentracing.Tracer
}

func NewFetcher(cfg *Config) *Fetcher {
	cfg = cfg.withDefaults()

	return &Fetcher{
		usersURL: cfg.UsersURL,
		postsURL: cfg.PostsURL,
		client:   cfg.HTTPClient,
		tracer:   cfg.Tracer,
	}
}

// Fetch requests both endpoints concurrently and waits for both. When either
// request fails the other one is cancelled and an error wrapping ErrFetch is
// returned.
func (f *Fetcher) Fetch(ctx context.Context) (*Dataset, error) {
	var ds Dataset

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return f.get(gctx, "users", f.usersURL, &ds.Users)
	})

	g.Go(func() error {
		return f.get(gctx, "posts", f.postsURL, &ds.Posts)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return &ds, nil
}

func (f *Fetcher) get(ctx context.Context, name, url string, v interface{}) error {
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, f.tracer, "postboard:Fetcher:"+name, ext.SpanKindRPCClient)
	ext.Component.Set(span, "postboard")
	ext.HTTPMethod.Set(span, http.MethodGet)
	ext.HTTPUrl.Set(span, url)
	defer span.Finish()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return spanError(span, err)
	}

	req.Header.Set("Accept", "application/json")

	if err := f.tracer.Inject(span.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header)); err != nil {
		span.LogFields(log.Error(err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return spanError(span, err)
	}
	defer resp.Body.Close()

	ext.HTTPStatusCode.Set(span, uint16(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return spanError(span, fmt.Errorf("GET %s: status %d", url, resp.StatusCode))
	}

	if err := jsoniter.NewDecoder(resp.Body).Decode(v); err != nil {
		return spanError(span, fmt.Errorf("decode %s: %w", name, err))
	}

	return nil
}

func spanError(span opentracing.Span, err error) error {
	ext.Error.Set(span, true)
	span.LogFields(log.Error(err))
	return err
}
