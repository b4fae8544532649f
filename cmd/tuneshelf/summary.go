package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"tuneshelf/organize"
)

// renderSummary prints the end-of-run tally.
func renderSummary(out io.Writer, summary *organize.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Found", "Moved", "Failed", "Playlist adds"})
	t.AppendRow(table.Row{summary.Found, summary.Moved, summary.Failed, summary.PlaylistAdds})
	t.Render()

	if len(summary.Failures) > 0 {
		ft := table.NewWriter()
		ft.SetOutputMirror(out)
		ft.SetStyle(table.StyleLight)
		ft.AppendHeader(table.Row{"File", "Error"})
		for _, f := range summary.Failures {
			ft.AppendRow(table.Row{f.Path, f.Error})
		}
		ft.Render()
	}
}
