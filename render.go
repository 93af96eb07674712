package postboard

import (
	"bytes"
	"io"
	"os"
)

// RenderData is what the page template executes against
type RenderData struct {
	Title          string
	State          ViewState
	RefreshSeconds int
}

// Renderer turns a ViewState into an HTML page
type Renderer struct {
	title string
}

func NewRenderer(title string) *Renderer {
	if title == "" {
		title = DefaultTitle
	}

	return &Renderer{title: title}
}

// Render writes the page for state to w. Nothing is written when the
// template fails.
func (r *Renderer) Render(w io.Writer, state ViewState) error {
	out, err := r.render(state)

	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

// RenderFile writes the page for state to path
func (r *Renderer) RenderFile(path string, state ViewState) error {
	out, err := r.render(state)

	if err != nil {
		return err
	}

	return os.WriteFile(path, out, 0644)
}

func (r *Renderer) render(state ViewState) ([]byte, error) {
	data := RenderData{
		Title:          r.title,
		State:          state,
		RefreshSeconds: 1,
	}

	b := make([]byte, 0)
	buff := bytes.NewBuffer(b)

	if err := tmplPage.Execute(buff, &data); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}
