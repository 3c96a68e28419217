package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/jonathan/client-research/internal/people"
)

// WriteMarkdown renders r as a Markdown document: a metadata table, the
// briefing body, then the gathered pages and team records.
func WriteMarkdown(w io.Writer, r *Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("Client Research Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Analyzed URL", r.URL},
			{"Role", r.Role},
			{"Generated", r.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST")},
			{"Report ID", r.ID.String()},
		},
	})
	md.PlainText("")

	md.H2("Briefing")
	md.PlainText("")
	md.PlainText(r.Body)
	md.PlainText("")

	writeSources(md, r)
	writeTeam(md, r)

	md.HorizontalRule()
	md.PlainText("")
	if r.Model != "" {
		md.PlainTextf("*Generated with %s*", r.Model)
	}

	if err := md.Build(); err != nil {
		return &Error{Message: "failed to write report", Cause: err}
	}
	return nil
}

func writeSources(md *markdown.Markdown, r *Report) {
	md.H2("Sources")
	md.PlainText("")

	rows := make([][]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		rows = append(rows, []string{p.Label, orDash(p.URL), sourceStatus(p)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page", "URL", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

func sourceStatus(p PageSummary) string {
	switch {
	case p.Error != "":
		return "failed"
	case p.URL == "":
		return "not found"
	case p.StatusCode != 0:
		return strconv.Itoa(p.StatusCode)
	default:
		return "ok"
	}
}

func writeTeam(md *markdown.Markdown, r *Report) {
	md.H2("Team")
	md.PlainText("")
	if len(r.People) == 0 {
		md.PlainText(people.NoTeamInfo)
		md.PlainText("")
		return
	}
	items := make([]string, 0, len(r.People))
	for _, p := range r.People {
		items = append(items, p.String())
	}
	md.BulletList(items...)
	md.PlainText("")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
