package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/view"
)

var (
	listPage   int
	listSize   int
	listSort   []string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List time entries",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 0, "Zero-based page number")
	listCmd.Flags().IntVar(&listSize, "size", 0, "Entries per page (default from config)")
	listCmd.Flags().StringArrayVar(&listSort, "sort", nil, "Sort as field,direction; repeatable (default from config)")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output format: md, csv, json, yaml (default from config)")
}

func runList(cmd *cobra.Command, args []string) error {
	size := listSize
	if size <= 0 {
		size = cfg.List.PageSize
	}
	sorts, err := parseSorts(listSort, cfg.List.Sort)
	if err != nil {
		fail(1, err)
	}
	format := listFormat
	if format == "" {
		format = cfg.List.Format
	}

	l := view.NewList(api, size)
	l.Page = listPage
	l.Sort = sorts
	if err := l.Load(cmd.Context()); err != nil {
		failAPI(err)
	}

	if err := writeEntries(os.Stdout, format, l.Items); err != nil {
		fail(1, err)
	}
	if format == formatMarkdown {
		printPageFooter(l)
	}
	return nil
}

// parseSorts parses the --sort values, falling back to def when none were given.
func parseSorts(raw []string, def string) ([]client.Sort, error) {
	if len(raw) == 0 {
		raw = []string{def}
	}
	sorts := make([]client.Sort, 0, len(raw))
	for _, s := range raw {
		parsed, err := client.ParseSort(s)
		if err != nil {
			return nil, err
		}
		sorts = append(sorts, parsed)
	}
	return sorts, nil
}

func printPageFooter(l *view.List) {
	fmt.Printf("Page %d, %d of %d entries.", l.Page, len(l.Items), l.Total)
	if next, ok := l.NextPage(); ok {
		fmt.Printf(" Next: --page %d", next)
	}
	fmt.Println()
}
