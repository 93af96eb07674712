package postboard

import (
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
)

const (
	DefaultUsersURL = "https://jsonplaceholder.typicode.com/users"
	DefaultPostsURL = "https://jsonplaceholder.typicode.com/posts"
	DefaultTitle    = "User List"
)

// Config for a Component. Zero values are replaced with defaults.
type Config struct {
	UsersURL string // endpoint returning a JSON array of users
	PostsURL string // endpoint returning a JSON array of posts
	Title    string // heading shown above the grid

	// Timeout bounds the fetch of one mount. Zero means no timeout.
	Timeout time.Duration

	HTTPClient *http.Client
	Tracer     opentracing.Tracer
	Logger     Logger

	// OnSettle is called once, from the fetch goroutine, with the settled
	// state. It is not called when the component was unmounted first.
	OnSettle func(ViewState)
}

func (c *Config) withDefaults() *Config {
	out := Config{}
	if c != nil {
		out = *c
	}

	if out.UsersURL == "" {
		out.UsersURL = DefaultUsersURL
	}

	if out.PostsURL == "" {
		out.PostsURL = DefaultPostsURL
	}

	if out.Title == "" {
		out.Title = DefaultTitle
	}

	if out.HTTPClient == nil {
		out.HTTPClient = http.DefaultClient
	}

	if out.Tracer == nil {
		out.Tracer = opentracing.GlobalTracer()
	}

	out.Logger = loggerOrDefault(out.Logger)

	return &out
}
