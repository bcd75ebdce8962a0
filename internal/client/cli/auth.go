package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		printlnFn("Login unsuccessful:", err)
		return
	}
	a.persistSession(ctx)
	printlnFn(fmt.Sprintf("Logged in as %s (%d credits)", email, a.session.Credits()))
}

func (a *App) Signup(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}

	if err := a.session.Signup(ctx, name, email, password); err != nil {
		printlnFn("Signup unsuccessful:", err)
		return
	}
	a.persistSession(ctx)
	printlnFn(fmt.Sprintf("Account created, %d credits to get you started", a.session.Credits()))
}

func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	a.clearPersistedSession(ctx)
	printlnFn("Logged out")
}

func (a *App) ForgotPassword(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	if err := a.api.ForgotPassword(ctx, email); err != nil {
		printlnFn("Could not request reset:", err)
		return
	}
	printlnFn("If the address exists, a reset email is on its way")
}

func (a *App) ResetPassword(ctx context.Context) {
	token, err := GetSimpleText(a.reader, "Enter reset token from the email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	if err := a.api.ResetPassword(ctx, token, password); err != nil {
		printlnFn("Reset failed:", err)
		return
	}
	printlnFn("Password updated, you can log in now")
}
