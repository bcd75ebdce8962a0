package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Analyze(ctx context.Context) {
	if !a.isLoggedIn() {
		printlnFn("Log in first; analysis consumes a credit")
		return
	}

	headline, err := GetSimpleText(a.reader, "Headline (optional)", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	text, err := GetMultiline(a.reader, "Paste the article text", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	if text == "" {
		printlnFn("Nothing to analyze")
		return
	}

	report, err := a.api.Analyze(ctx, text, headline)
	if err != nil {
		printlnFn("Analysis failed:", err)
		return
	}

	printlnFn(fmt.Sprintf("Verdict: %s (%.0f%% confidence)", report.Verdict, report.Confidence))
	if report.Summary != "" {
		printlnFn("Summary:", report.Summary)
	}
	for _, f := range report.RedFlags {
		printlnFn("  red flag:", f)
	}
	for _, cl := range report.KeyClaims {
		printlnFn("  claim:", cl)
	}
	if len(report.SourcesChecked) > 0 {
		printlnFn(fmt.Sprintf("Checked %d sources:", report.TotalSourcesChecked))
		for _, s := range report.SourcesChecked {
			mark := " "
			if s.Checked {
				mark = "x"
			}
			printlnFn(fmt.Sprintf("  [%s] %s (%s)", mark, s.Name, s.Credibility))
		}
	}

	// The analysis consumed a credit; pick up the new balance.
	a.session.RefreshCredits(ctx)
}

func (a *App) Sources(ctx context.Context) {
	sources, err := a.api.Sources(ctx)
	if err != nil {
		printlnFn("Could not fetch sources:", err)
		return
	}
	for _, s := range sources {
		printlnFn(fmt.Sprintf("%s <%s> (%s)", s.Name, s.URL, s.Credibility))
	}
}

func (a *App) Feedback(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Your name", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Your email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	message, err := GetMultiline(a.reader, "Your message", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	if err := a.api.SendFeedback(ctx, name, email, message); err != nil {
		printlnFn("Could not send feedback:", err)
		return
	}
	printlnFn("Thanks for the feedback!")
}
