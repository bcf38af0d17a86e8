package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sourceclub/door-monitor/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"epoch": func(ts int64) string {
		if ts == 0 {
			return "never"
		}
		return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05 UTC")
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Door Monitor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.open { color: green; font-weight: bold; }
.closed { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Door Monitor</h1>

<h2>Door</h2>
<table>
<tr><th>State</th><td class="{{if .Door.IsOpen}}open{{else}}closed{{end}}">{{if .Door.IsOpen}}OPEN{{else}}CLOSED{{end}}</td></tr>
<tr><th>Last opened</th><td>{{epoch .Door.LastOpened}}</td></tr>
<tr><th>Last closed</th><td>{{epoch .Door.LastClosed}}</td></tr>
<tr><th>Openings today</th><td>{{.OpeningsToday}}</td></tr>
<tr><th>Aggregate date</th><td>{{.Date}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{else}}<tr><th>MQTT</th><td>disabled</td></tr>{{end}}
<tr><th>Remote sync</th><td class="{{if .RemoteOK}}connected{{else}}disconnected{{end}}">{{if .RemoteOK}}ok{{else}}failing{{end}}</td></tr>
{{if not .LastSync.IsZero}}<tr><th>Last sync</th><td>{{.LastSync.UTC.Format "2006-01-02 15:04:05 UTC"}}</td></tr>{{end}}
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Switch pin</th><td>{{.Config.Pin}}</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Rollover</th><td>{{.Config.RolloverAt}} ({{.Config.Timezone}})</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
