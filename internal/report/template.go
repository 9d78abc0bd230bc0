package report

const htmlTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.5;
            color: #333;
            margin: 0 auto;
            max-width: 1200px;
            padding: 20px;
        }
        h1 { color: #4b3f8f; }
        h2 { border-bottom: 1px solid #ddd; padding-bottom: 4px; margin-top: 32px; }
        table { border-collapse: collapse; width: 100%; margin: 12px 0; }
        th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; vertical-align: top; }
        th { background: #f4f4f8; }
        tr:nth-child(even) td { background: #fafafa; }
        ul { margin: 4px 0; padding-left: 18px; }
        code { background: #f4f4f4; padding: 1px 4px; border-radius: 3px; }
        .line-no { color: gray; }
        .sev { font-weight: 600; white-space: nowrap; }
        .sev::before { content: "\25CF"; margin-right: 4px; }
        .sev-info::before { color: #3178c6; }
        .sev-warning::before { color: #d19a00; }
        .sev-error::before { color: #c62828; }
    </style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.M.Get "checkstylelink"}} <a href="{{.EngineURL}}">Checkstyle</a>{{if .EngineVersion}} {{.EngineVersion}}{{end}} {{.M.Getf "ruleset" .Ruleset}}.</p>
{{- if .ShowSeverity}}

<section id="summary">
<h2>{{.M.Get "summary"}}</h2>
<table>
    <tr>
        <th>{{.M.Get "files"}}</th>
        <th><span class="sev sev-info">{{label .M "info" "s"}}</span></th>
        <th><span class="sev sev-warning">{{label .M "warning" "s"}}</span></th>
        <th><span class="sev sev-error">{{label .M "error" "s"}}</span></th>
    </tr>
    <tr>
        <td>{{.Severity.Files}}</td>
        <td>{{.Severity.Info}}</td>
        <td>{{.Severity.Warning}}</td>
        <td>{{.Severity.Error}}</td>
    </tr>
</table>
</section>
{{- end}}
{{- if .ShowFiles}}

<section id="files">
<h2>{{.M.Get "files"}}</h2>
<table>
    <tr>
        <th>{{.M.Get "file"}}</th>
        <th><span class="sev sev-info">{{label .M "info" "s.abbrev"}}</span></th>
        <th><span class="sev sev-warning">{{label .M "warning" "s.abbrev"}}</span></th>
        <th><span class="sev sev-error">{{label .M "error" "s.abbrev"}}</span></th>
    </tr>
    {{- range .Files}}
    <tr>
        <td><a href="#{{.Anchor}}">{{.Name}}</a></td>
        <td>{{.Info}}</td>
        <td>{{.Warning}}</td>
        <td>{{.Error}}</td>
    </tr>
    {{- end}}
</table>
</section>
{{- end}}
{{- if .ShowRules}}

<section id="rules">
<h2>{{.M.Get "rules"}}</h2>
<table>
    <tr>
        <th>{{.M.Get "rule.category"}}</th>
        <th>{{.M.Get "rule"}}</th>
        <th>{{.M.Get "violations"}}</th>
        <th>{{.M.Get "column.severity"}}</th>
    </tr>
    {{- if .IsChecker}}
    {{- range .Rules}}
    <tr>
        <td>{{.Category}}</td>
        <td>{{if .Link}}<a href="{{.Link}}">{{.Rule}}</a>{{else}}{{.Rule}}{{end}}
        {{- if .Attributes}}
            <ul>
            {{- range .Attributes}}
                <li>{{.Name}}{{if .Lines}}{{range $i, $line := .Lines}}<br><span class="line-no">{{add $i 1}}:</span>&nbsp;<code>{{$line}}</code>{{end}}{{else}}: <code>"{{.Value}}"</code>{{end}}</li>
            {{- end}}
            </ul>
        {{- end}}
        </td>
        <td>{{.Violations}}</td>
        <td><span class="sev sev-{{.Severity}}">{{label $.M .Severity ""}}</span></td>
    </tr>
    {{- end}}
    {{- else}}
    <tr><td colspan="4">{{.M.Get "norule"}}</td></tr>
    {{- end}}
</table>
</section>
{{- end}}

<section id="details">
<h2>{{.M.Get "details"}}</h2>
{{- range .Details}}
<section id="{{.Anchor}}">
<h3>{{.Name}}</h3>
<table>
    <tr>
        <th>{{$.M.Get "column.severity"}}</th>
        <th>{{$.M.Get "rule.category"}}</th>
        <th>{{$.M.Get "rule"}}</th>
        <th>{{$.M.Get "column.message"}}</th>
        <th>{{$.M.Get "column.line"}}</th>
    </tr>
    {{- range .Events}}
    <tr>
        <td><span class="sev sev-{{.Severity}}">{{label $.M .Severity ""}}</span></td>
        <td>{{.Category}}</td>
        <td>{{.Rule}}</td>
        <td>{{.Message}}</td>
        <td>{{if .LineLink}}<a href="{{.LineLink}}">{{.Line}}</a>{{else if .Line}}{{.Line}}{{end}}</td>
    </tr>
    {{- end}}
</table>
</section>
{{- end}}
</section>
</body>
</html>
`
