package output

import (
	"html/template"
	"strings"

	"github.com/homelab-infra/portscope/pkg/model"
)

var reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>Port Usage Report – {{.Host}}</title>
    <style>
        body {
            font-family: system-ui, -apple-system, "Segoe UI", sans-serif;
            margin: 1.5rem;
            background: #f5f5f5;
        }
        h1, h2 { margin-bottom: 0.25rem; }
        .meta { margin-bottom: 1rem; font-size: 0.9rem; color: #555; }
        table { border-collapse: collapse; width: 100%; background: #fff; }
        th, td { border: 1px solid #ddd; padding: 0.35rem 0.5rem; font-size: 0.8rem; }
        th { background: #eee; position: sticky; top: 0; }
        tr:nth-child(even) td { background: #fafafa; }
        tr.conflict td { background: #fdecea; }
        code { font-family: ui-monospace, Menlo, Consolas, monospace; }
    </style>
</head>
<body>
    <h1>Port Usage Report</h1>
    <div class="meta">
        <div><strong>Host:</strong> <code>{{.Host}}</code></div>
        <div><strong>Generated:</strong> {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</div>
        <div><strong>Schema:</strong> {{.SchemaVersion}} / <strong>Version:</strong> {{.ScriptVersion}}</div>
        <div><strong>Ports:</strong> {{len .Ports}}</div>
        <div><strong>Ephemeral range:</strong> {{if .IPLocalPortRange}}{{index .IPLocalPortRange 0}} – {{index .IPLocalPortRange 1}}{{else}}unknown{{end}}</div>
        <div><strong>Docker:</strong> {{if .Docker.Available}}available, {{.Docker.Count}} containers{{if .Docker.SkippedMappings}}, {{.Docker.SkippedMappings}} mapping clauses skipped{{end}}{{else}}unavailable{{end}}</div>
    </div>

    <h2>Ports</h2>
    <table>
        <thead>
            <tr>
                <th>Proto</th><th>Address</th><th>Port</th><th>Category</th><th>Conflict</th>
                <th>PID</th><th>User</th><th>Process</th><th>Cmdline</th>
                <th>Container</th><th>ID</th><th>Image</th><th>Mapping</th>
            </tr>
        </thead>
        <tbody>
        {{range .Ports}}
            <tr{{if .Conflict}} class="conflict"{{end}}>
                <td><code>{{.Protocol}}</code></td>
                <td><code>{{.BindAddress}}</code></td>
                <td><code>{{.Port}}</code></td>
                <td>{{.Category}}</td>
                <td>{{if .Conflict}}yes{{end}}</td>
                {{with .Listener}}
                <td><code>{{if .PID}}{{.PID}}{{end}}</code></td>
                <td>{{.User}}</td>
                <td>{{.ProcessName}}</td>
                <td>{{.CommandLine}}</td>
                {{else}}
                <td></td><td></td><td></td><td></td>
                {{end}}
                {{with .Published}}
                <td>{{.ContainerName}}</td>
                <td><code>{{.ContainerID}}</code></td>
                <td>{{.ContainerImage}}</td>
                <td><code>{{.RawMappingSpec}}</code></td>
                {{else}}
                <td></td><td></td><td></td><td></td>
                {{end}}
            </tr>
        {{end}}
        </tbody>
    </table>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

// RenderHTML produces the human-readable view. It is derived entirely from
// the document and regenerable from the persisted JSON at any time; it is
// not authoritative.
func RenderHTML(doc model.ReportDocument) (string, error) {
	var b strings.Builder
	if err := reportTemplate.Execute(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}
