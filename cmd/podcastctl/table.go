package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Width caps the cell width; longer
// values wrap on word boundaries. Zero leaves the column unbounded.
type column struct {
	Title string
	Width int
	Align text.Align
}

var (
	listColumns = []column{
		{Title: "ID"},
		{Title: "Status"},
		{Title: "Created"},
		{Title: "Message", Width: 48},
	}
	voiceColumns = []column{
		{Title: "Voice"},
		{Title: "Name"},
		{Title: "Gender"},
		{Title: "Description", Width: 40},
		{Title: "Suitable For", Width: 30},
	}
	dialogueColumns = []column{
		{Title: "#", Align: text.AlignRight},
		{Title: "Start", Align: text.AlignRight},
		{Title: "End", Align: text.AlignRight},
		{Title: "Speaker", Width: 24},
		{Title: "Text", Width: 64},
	}
)

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Title
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       col.Align,
			AlignHeader: text.AlignLeft,
		}
		if col.Width > 0 {
			cfg.WidthMax = col.Width
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs[i] = cfg
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
