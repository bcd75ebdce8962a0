package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/newsscope/newsscope/internal/client/checkout"
)

// BuyCredits runs one instance of the purchase flow. Each invocation gets a
// fresh orchestrator so previous attempts cannot leak state into this one.
func (a *App) BuyCredits(ctx context.Context) {
	user := a.session.Current()
	if user == nil {
		printlnFn("Log in before buying credits")
		return
	}

	orch := checkout.NewOrchestrator(a.api, a.loader, a.widget, a.log)
	orch.OnSuccess = func(creditsAdded int) {
		a.session.RefreshCredits(ctx)
	}
	defer orch.Close()

	if err := orch.Open(ctx); err != nil {
		printlnFn("Could not load credit packages:", err)
		return
	}

	packages := orch.Packages()
	if len(packages) == 0 {
		printlnFn("No packages on offer right now")
		return
	}
	printlnFn(fmt.Sprintf("Current balance: %d credits", a.session.Credits()))
	for _, p := range packages {
		tag := ""
		if p.Popular {
			tag = "  [popular]"
		}
		printlnFn(fmt.Sprintf("%-8s %4d credits  %s%d%s", p.ID, p.Credits, currencySymbol(p.Currency), p.Price, tag))
	}

	choice, err := GetSimpleText(a.reader, "Package id to buy (empty to cancel)", os.Stdout)
	if err != nil || choice == "" {
		printlnFn("Cancelled")
		return
	}

	printlnFn("Opening secure checkout in your browser...")
	outcome, err := orch.Purchase(ctx, choice, checkout.Prefill{Email: user.Email, Name: user.Name})
	if err != nil {
		if errors.Is(err, checkout.ErrVerificationFailed) {
			printlnFn("Payment could not be verified; no credits were added")
		} else {
			printlnFn("Purchase failed:", err)
		}
		return
	}
	if outcome.Dismissed {
		printlnFn("Checkout closed without payment")
		return
	}
	printlnFn(fmt.Sprintf("Success! %d credits added (balance: %d)", outcome.CreditsAdded, a.session.Credits()))
}

func currencySymbol(currency string) string {
	switch currency {
	case "INR":
		return "₹"
	case "USD":
		return "$"
	default:
		return currency + " "
	}
}
