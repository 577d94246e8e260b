package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/timecalc"
	"github.com/Tiliavir/icicle-admin/internal/view"
)

// reportPageSize is the page size used while walking all entries.
const reportPageSize = 200

var (
	reportFrom   string
	reportTo     string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show minutes worked per task",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "First day to include, YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Last day to include, YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

// taskTotal is the time booked on one task.
type taskTotal struct {
	Task    string `json:"task"`
	Minutes int    `json:"minutes"`
}

func runReport(cmd *cobra.Command, args []string) error {
	from, err := optionalDate(reportFrom)
	if err != nil {
		fail(1, err)
	}
	to, err := optionalDate(reportTo)
	if err != nil {
		fail(1, err)
	}

	entries, err := loadAll(cmd.Context())
	if err != nil {
		failAPI(err)
	}

	totals, grandTotal := aggregate(entries, from, to)
	if err := writeReport(os.Stdout, reportFormat, totals, grandTotal); err != nil {
		fail(1, err)
	}
	return nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := timecalc.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// loadAll walks every page of the listing.
func loadAll(ctx context.Context) ([]model.TimeEntry, error) {
	l := view.NewList(api, reportPageSize)
	var all []model.TimeEntry
	for {
		if err := l.Load(ctx); err != nil {
			return nil, err
		}
		all = append(all, l.Items...)
		next, ok := l.NextPage()
		if !ok || next <= l.Page {
			return all, nil
		}
		l.Page = next
	}
}

// aggregate sums minutes per task for entries dated within [from, to].
// Entries without minutes are skipped; entries without a date are skipped
// when a bound is set.
func aggregate(entries []model.TimeEntry, from, to *time.Time) ([]taskTotal, int) {
	byTask := map[string]int{}
	for _, e := range entries {
		if e.MinutesWorked == nil {
			continue
		}
		if from != nil || to != nil {
			if e.Date == nil {
				continue
			}
			day := timecalc.CalendarDay(*e.Date)
			if (from != nil && day.Before(*from)) || (to != nil && day.After(*to)) {
				continue
			}
		}
		task := ""
		if e.TaskName != nil {
			task = *e.TaskName
		}
		byTask[task] += *e.MinutesWorked
	}

	totals := make([]taskTotal, 0, len(byTask))
	grandTotal := 0
	for task, m := range byTask {
		totals = append(totals, taskTotal{Task: task, Minutes: m})
		grandTotal += m
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Task < totals[j].Task })
	return totals, grandTotal
}

func writeReport(w io.Writer, format string, totals []taskTotal, grandTotal int) error {
	switch format {
	case "csv":
		fmt.Fprintln(w, "task,minutes")
		for _, t := range totals {
			fmt.Fprintf(w, "%s,%d\n", csvEscape(t.Task), t.Minutes)
		}
	case "json":
		data, err := json.MarshalIndent(struct {
			Tasks        []taskTotal `json:"tasks"`
			TotalMinutes int         `json:"total_minutes"`
		}{totals, grandTotal}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	default: // md
		fmt.Fprintln(w, "--------------------------------")
		for _, t := range totals {
			name := t.Task
			if name == "" {
				name = "(no task)"
			}
			fmt.Fprintf(w, "%-20s%s\n", name, timecalc.FormatMinutes(t.Minutes))
		}
		fmt.Fprintln(w, "--------------------------------")
		fmt.Fprintf(w, "%-20s%s\n", "Total", timecalc.FormatMinutes(grandTotal))
	}
	return nil
}
