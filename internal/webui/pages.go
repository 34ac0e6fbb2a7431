package webui

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"deepsearch/internal/history"
)

const pageStyle = `body{font-family:sans-serif;max-width:56rem;margin:2rem auto;padding:0 1rem}
input[type=text]{width:70%;padding:.4rem}
pre{background:#f5f5f5;padding:1rem;white-space:pre-wrap}
table{border-collapse:collapse;width:100%}
td,th{border-bottom:1px solid #ddd;padding:.3rem .6rem;text-align:left}
#events li{font-family:monospace;font-size:.85rem}`

// renderPage writes a component as a full HTML response.
func renderPage(w http.ResponseWriter, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(context.Background(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// layout wraps body content in the HTML shell.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s</title>
<style>%s</style>
</head>
<body>
`, html.EscapeString(title), pageStyle); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// indexPage renders the subject form and recent run history.
func indexPage(recent []history.Run) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Deep Search</h1>
<form method="post" action="/search">
<input type="text" name="subject" placeholder="What should I research?" autofocus/>
<button type="submit">Search</button>
</form>
`); err != nil {
			return err
		}
		if len(recent) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, "<h2>Recent runs</h2>\n<table>\n<tr><th>Subject</th><th>Report</th><th>Started</th></tr>\n"); err != nil {
			return err
		}
		for _, run := range recent {
			report := run.ReportFile
			if !run.ReportFound {
				report = "(not produced)"
			}
			if _, err := fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(run.Subject),
				html.EscapeString(report),
				run.StartedAt.Format("2006-01-02 15:04"),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
	return layout("Deep Search", body)
}

// runPage renders the live view for one run. The script subscribes to
// the run's event stream and appends tokens and lifecycle events as
// they arrive.
func runPage(id, subject string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%s</h1>
<p><a href="/">new search</a> | <a href="/runs/%s/report">report</a></p>
<h2>Answer</h2>
<pre id="answer"></pre>
<h2>Events</h2>
<ul id="events"></ul>
<script>
const source = new EventSource("/runs/%s/events");
const answer = document.getElementById("answer");
const events = document.getElementById("events");
source.addEventListener("token", (e) => {
  answer.textContent += JSON.parse(e.data);
});
source.addEventListener("lifecycle", (e) => {
  const evt = JSON.parse(e.data);
  const li = document.createElement("li");
  li.textContent = evt.name + " " + JSON.stringify(evt.payload);
  events.appendChild(li);
});
source.addEventListener("done", (e) => {
  const li = document.createElement("li");
  li.textContent = "done " + e.data;
  events.appendChild(li);
  source.close();
});
</script>
`, html.EscapeString(subject), id, id)
		return err
	})
	return layout("Deep Search: "+subject, body)
}
