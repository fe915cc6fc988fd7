package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	sprig "github.com/go-task/slim-sprig/v3"
)

// Alert texts may carry links and line breaks, so they are inserted unescaped.
const alertTemplate = `<dl>
<dt><b>Error:</b></dt><dd>{{ .Error | raw }}</dd>
{{- with .Result }}
<dt><b>Result:</b></dt><dd>{{ raw . }}</dd>
{{- end }}
{{- with .Solution }}
<dt><b>Solution:</b></dt><dd>{{ raw . }}</dd>
{{- end }}
</dl>
<p style="color:#888;font-size:small">Sent by {{ .Binary | base }} on {{ .Host | default "unknown host" }} at {{ .SentAt.Format "2006-01-02T15:04:05-0700" }}</p>
`

type alertView struct {
	entity.Alert
	Host   string
	Binary string
	SentAt time.Time
}

// Renderer builds the HTML body of an alert email.
type Renderer struct {
	tmpl   *template.Template
	host   string
	binary string
	now    func() time.Time
}

func NewRenderer() (*Renderer, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["raw"] = func(s string) template.HTML { return template.HTML(s) }

	tmpl, err := template.New("alert").Funcs(funcs).Parse(alertTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse alert template: %w", err)
	}

	host, _ := os.Hostname()
	binary, _ := os.Executable()
	return &Renderer{tmpl: tmpl, host: host, binary: binary, now: time.Now}, nil
}

func (r *Renderer) Render(alert entity.Alert) (string, error) {
	var buf bytes.Buffer
	view := alertView{Alert: alert, Host: r.host, Binary: r.binary, SentAt: r.now()}
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render alert: %w", err)
	}
	return buf.String(), nil
}
