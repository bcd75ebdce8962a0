package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

func (a *App) Dashboard(ctx context.Context) {
	if err := a.dashboard.LoadSummary(ctx); err != nil {
		// Non-fatal: show whatever state we have (possibly the local cache).
		printlnFn("Notice:", err)
	}

	if stats := a.dashboard.Stats(); stats != nil {
		printlnFn(fmt.Sprintf("Total analyses: %d", stats.TotalAnalyses))
		pct := a.dashboard.VerdictPercentages()
		for v, n := range stats.VerdictDistribution {
			printlnFn(fmt.Sprintf("  %-10s %3d  %5.1f%%", v, n, pct[v]))
		}
		if stats.LastAnalysis != "" {
			printlnFn("Last analysis:", stats.LastAnalysis)
		}
	}

	recent, cached := a.dashboard.Recent()
	if cached {
		printlnFn("(backend unreachable, showing locally cached records)")
	}
	for _, r := range recent {
		mark := " "
		if a.dashboard.IsSelected(r.ID) {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("[%s] #%-4d %-10s %3.0f%%  %s", mark, r.ID, r.Verdict, r.Confidence, r.Headline))
	}
}

func (a *App) History(ctx context.Context, args []string) {
	page := 1
	if len(args) > 0 {
		if p, err := strconv.Atoi(args[0]); err == nil && p > 0 {
			page = p
		}
	}
	resp, err := a.api.History(ctx, page, 10)
	if err != nil {
		printlnFn("Could not fetch history:", err)
		return
	}
	for _, r := range resp.Analyses {
		printlnFn(fmt.Sprintf("#%-4d %s %-10s %3.0f%%  %s", r.ID, r.Timestamp, r.Verdict, r.Confidence, r.Headline))
	}
	printlnFn(fmt.Sprintf("Page %d of %d records", resp.Page, resp.Total))
}

func (a *App) Select(args []string) {
	if len(args) == 0 {
		printlnFn("Usage: select <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Not a record id:", args[0])
		return
	}
	a.dashboard.Toggle(id)
	printlnFn(fmt.Sprintf("Selected %d records", len(a.dashboard.Selected())))
}

func (a *App) DeleteSelected(ctx context.Context) {
	n := len(a.dashboard.Selected())
	if n == 0 {
		printlnFn("Nothing selected")
		return
	}
	if !Confirm(a.reader, fmt.Sprintf("Delete %d selected analyses?", n), os.Stdout) {
		printlnFn("Cancelled")
		return
	}
	if err := a.dashboard.DeleteSelected(ctx); err != nil {
		printlnFn("Delete failed:", err)
		return
	}
	printlnFn(fmt.Sprintf("Deleted %d analyses", n))
}

func (a *App) DeleteAll(ctx context.Context) {
	if !Confirm(a.reader, "Delete your ENTIRE analysis history?", os.Stdout) {
		printlnFn("Cancelled")
		return
	}
	if err := a.dashboard.DeleteAll(ctx); err != nil {
		printlnFn("Delete failed:", err)
		return
	}
	printlnFn("History cleared")
}
