package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/timecalc"
)

// Output formats understood by writeEntries.
const (
	formatMarkdown = "md"
	formatCSV      = "csv"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

// entryRow is the flat shape entries are printed in.
type entryRow struct {
	ID            int64   `json:"id" yaml:"id"`
	Date          string  `json:"date,omitempty" yaml:"date,omitempty"`
	MinutesWorked *int    `json:"minutesWorked,omitempty" yaml:"minutesWorked,omitempty"`
	TaskName      *string `json:"taskName,omitempty" yaml:"taskName,omitempty"`
	UserID        *int64  `json:"userId,omitempty" yaml:"userId,omitempty"`
}

func toRow(e model.TimeEntry) entryRow {
	r := entryRow{ID: e.ID, MinutesWorked: e.MinutesWorked, TaskName: e.TaskName}
	if e.Date != nil {
		r.Date = timecalc.FormatDate(*e.Date)
	}
	if e.User != nil {
		id := e.User.ID
		r.UserID = &id
	}
	return r
}

func toRows(entries []model.TimeEntry) []entryRow {
	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toRow(e))
	}
	return rows
}

// writeEntries prints entries to w in the given format.
func writeEntries(w io.Writer, format string, entries []model.TimeEntry) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(toRows(entries), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toRows(entries)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case formatCSV:
		writeCSV(w, entries)
		return nil
	case formatMarkdown:
		writeMarkdown(w, entries)
		return nil
	}
	return fmt.Errorf("unknown format %q (use md, csv, json or yaml)", format)
}

func writeCSV(w io.Writer, entries []model.TimeEntry) {
	fmt.Fprintln(w, "id,date,minutes_worked,task_name,user_id")
	for _, r := range toRows(entries) {
		fmt.Fprintf(w, "%d,%s,%s,%s,%s\n",
			r.ID,
			csvEscape(r.Date),
			optional(r.MinutesWorked, strconv.Itoa),
			csvEscape(optional(r.TaskName, func(s string) string { return s })),
			optional(r.UserID, func(id int64) string { return strconv.FormatInt(id, 10) }),
		)
	}
}

// writeMarkdown prints a table followed by the summed minutes.
func writeMarkdown(w io.Writer, entries []model.TimeEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	fmt.Fprintln(w, "| ID | Date | Worked | Task | User |")
	fmt.Fprintln(w, "|---:|------|-------:|------|-----:|")
	total := 0
	for _, r := range toRows(entries) {
		worked := ""
		if r.MinutesWorked != nil {
			worked = timecalc.FormatMinutes(*r.MinutesWorked)
			total += *r.MinutesWorked
		}
		fmt.Fprintf(w, "| %d | %s | %s | %s | %s |\n",
			r.ID,
			r.Date,
			worked,
			mdEscape(optional(r.TaskName, func(s string) string { return s })),
			optional(r.UserID, func(id int64) string { return strconv.FormatInt(id, 10) }),
		)
	}
	fmt.Fprintf(w, "\nTotal: %s\n", timecalc.FormatMinutes(total))
}

// optional formats *v with f, or returns "" for nil.
func optional[T any](v *T, f func(T) string) string {
	if v == nil {
		return ""
	}
	return f(*v)
}

// mdEscape keeps a cell from breaking the table.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
