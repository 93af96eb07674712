package postboard

import (
	"fmt"
	"html/template"
)

var funMap = template.FuncMap{
	"loading": func(p Phase) bool { return p == PhaseLoading },
	"failed":  func(p Phase) bool { return p == PhaseError },
	"ready":   func(p Phase) bool { return p == PhaseReady },
	"posts": func(n int) string {
		return fmt.Sprintf("%d posts", n)
	},
}

var tmplPage = template.Must(
	template.New("page").Funcs(funMap).Parse(`
{{- define "loading" -}}
    <p class="status">Loading...</p>
{{- end -}}

{{- define "error" -}}
    <p class="status">{{ .Message }}</p>
{{- end -}}

{{- define "card" -}}
    <div class="card" data-user-id="{{ .UserID }}">
        <h6 class="card-name">{{ .Name }}</h6>
        <p class="card-count">{{ posts .PostCount }}</p>
    </div>
{{- end -}}

{{- define "ready" -}}
    <main class="container">
        <h4 class="title">{{ .Title }}</h4>
        <div class="grid">
        {{- range .State.Cards }}
            {{ template "card" . }}
        {{- end }}
        </div>
    </main>
{{- end -}}

<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    {{- if loading .State.Phase }}
    <meta http-equiv="refresh" content="{{ .RefreshSeconds }}">
    {{- end }}
    <title>{{ .Title }}</title>
    <style>
        body { margin: 0; font-family: Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 1200px; margin: 0 auto; padding: 0 24px; }
        .title { font-size: 2.125rem; font-weight: 400; margin: 0 0 0.35em; }
        .grid { display: grid; gap: 24px; grid-template-columns: 1fr; }
        @media (min-width: 600px) { .grid { grid-template-columns: repeat(2, 1fr); } }
        @media (min-width: 900px) { .grid { grid-template-columns: repeat(3, 1fr); } }
        .card {
            background: linear-gradient(135deg, #6a11cb 0%, #2575fc 100%);
            border-radius: 15px;
            color: white;
            box-shadow: 0 4px 10px rgba(0, 0, 0, 0.2);
            padding: 16px;
        }
        .card-name { font-size: 1.25rem; font-weight: 500; margin: 0; }
        .card-count { font-size: 0.875rem; margin: 0; }
    </style>
</head>
<body>
{{ if loading .State.Phase -}}
    {{ template "loading" .State }}
{{- else if failed .State.Phase -}}
    {{ template "error" .State }}
{{- else if ready .State.Phase -}}
    {{ template "ready" . }}
{{- end }}
</body>
</html>
`),
)
