// Package report renders assessments and facilitator progress for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// Format selects the output rendering
type Format string

// Supported formats
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts "table" or "json", case-insensitively
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table or json)", raw)
	}
}

// Alignment is a table column alignment
type Alignment int

// Column alignments
const (
	AlignLeft Alignment = iota
	AlignRight
)

// WriteAssessment renders a stateless scoring result
func WriteAssessment(w io.Writer, a types.Assessment, format Format) error {
	if format == FormatJSON {
		return WriteJSON(w, a)
	}

	rows := make([][]string, 0, len(a.Competencies))
	for _, c := range a.Competencies {
		rows = append(rows, []string{string(c.CompetencyID), FormatScore(c.Score), string(c.Status)})
	}

	out := RenderTable(
		[]string{"Competency", "Score", "Status"},
		rows,
		[]Alignment{AlignLeft, AlignRight, AlignLeft},
	)
	_, err := fmt.Fprintf(w, "Rules version: %s\n%s\n", a.RulesVersion, out)
	return err
}

// WriteProgress renders a facilitator's reconciled statuses. Rows where the
// calculated status outranks the manual one are flagged.
func WriteProgress(w io.Writer, rows []types.CompetencyProgress, format Format) error {
	if format == FormatJSON {
		return WriteJSON(w, rows)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		manual := "-"
		if row.ManualStatus != nil {
			manual = string(*row.ManualStatus)
		}
		flag := ""
		if row.Suggestion {
			flag = "review"
		}
		cells = append(cells, []string{
			string(row.CompetencyID),
			FormatScore(row.Score),
			string(row.SuggestedStatus),
			manual,
			string(row.Status),
			flag,
		})
	}

	out := RenderTable(
		[]string{"Competency", "Score", "Suggested", "Manual", "Status", ""},
		cells,
		[]Alignment{AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	)
	_, err := fmt.Fprintln(w, out)
	return err
}

// FormatScore prints a score with at most two decimals and no trailing zeros
func FormatScore(score float64) string {
	return strconv.FormatFloat(math.Round(score*100)/100, 'f', -1, 64)
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// RenderTable draws a rounded table. Missing cells render empty and columns
// without an alignment are left-aligned.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
