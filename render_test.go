package postboard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, state ViewState) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, NewRenderer("").Render(&buf, state))
	return buf.String()
}

func TestRenderLoading(t *testing.T) {
	out := renderString(t, ViewState{Phase: PhaseLoading})

	assert.Contains(t, out, "Loading...")
	assert.Contains(t, out, `http-equiv="refresh"`)
	assert.NotContains(t, out, `class="title"`)
	assert.NotContains(t, out, `class="card"`)
	assert.NotContains(t, out, ErrorMessage)
}

func TestRenderError(t *testing.T) {
	out := renderString(t, ViewState{Phase: PhaseError, Message: ErrorMessage})

	assert.Contains(t, out, ErrorMessage)
	assert.NotContains(t, out, "Loading...")
	assert.NotContains(t, out, `class="title"`)
	assert.NotContains(t, out, `class="card"`)
	assert.NotContains(t, out, `http-equiv="refresh"`)
}

func TestRenderReady(t *testing.T) {
	ds := &Dataset{
		Users: []User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Cid"}},
		Posts: []Post{{UserID: 1}, {UserID: 1}, {UserID: 2}},
	}

	out := renderString(t, ViewState{Phase: PhaseReady, Users: ds.Users, Posts: ds.Posts, Cards: ds.Cards()})

	assert.Contains(t, out, `<h4 class="title">User List</h4>`)
	assert.Equal(t, 3, strings.Count(out, `class="card"`))
	assert.Contains(t, out, `<h6 class="card-name">Ann</h6>`)
	assert.Contains(t, out, `<p class="card-count">2 posts</p>`)
	assert.Contains(t, out, `<p class="card-count">1 posts</p>`)
	assert.Contains(t, out, `<p class="card-count">0 posts</p>`)
	assert.Contains(t, out, "linear-gradient(135deg, #6a11cb 0%, #2575fc 100%)")
	assert.NotContains(t, out, "Loading...")
}

func TestRenderReadyEmpty(t *testing.T) {
	out := renderString(t, ViewState{Phase: PhaseReady})

	assert.Contains(t, out, `class="title"`)
	assert.Equal(t, 0, strings.Count(out, `class="card"`))
	assert.NotContains(t, out, ErrorMessage)
}

func TestRenderEscapesNames(t *testing.T) {
	out := renderString(t, ViewState{
		Phase: PhaseReady,
		Cards: []Card{{UserID: 1, Name: `<script>alert("x")</script>`}},
	})

	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderCustomTitle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("Authors").Render(&buf, ViewState{Phase: PhaseReady}))
	assert.Contains(t, buf.String(), `<h4 class="title">Authors</h4>`)
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.html")

	err := NewRenderer("").RenderFile(path, ViewState{
		Phase: PhaseReady,
		Cards: []Card{{UserID: 1, Name: "Ann", PostCount: 2}},
	})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Ann")
	assert.Contains(t, string(b), "2 posts")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderWriteError(t *testing.T) {
	err := NewRenderer("").Render(failingWriter{}, ViewState{})
	assert.EqualError(t, err, "closed")
}
