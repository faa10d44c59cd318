package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jfmartinez/credvault/internal/common"
	"github.com/jfmartinez/credvault/internal/identity"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password, and password confirmation, and
// attempts to create a new account through the workflow.
//
// Field-scoped failures are printed one per field; on success the created
// account's email is printed. Password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	summary, err := a.workflow.Register(ctx, identity.RegisterInput{
		Name:          name,
		Email:         email,
		Secret:        string(password),
		ConfirmSecret: string(confirm),
	})
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Printf("Registered %s\n", summary.Email)
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// signed-in identity is remembered for the session and shown in the prompt.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	summary, err := a.workflow.Authenticate(ctx, identity.LoginInput{
		Email:  email,
		Secret: string(password),
	})
	if err != nil {
		a.reportError(err)
		return err
	}

	a.user = summary
	fmt.Printf("Welcome, %s!\n", summary.Name)
	return nil
}

// Logout forgets the signed-in identity.
func (a *App) Logout() {
	a.user = nil
	fmt.Println("Logged out")
}

// Whoami prints the signed-in identity, if any.
func (a *App) Whoami() {
	if a.user == nil {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("%s <%s>, registered %s\n", a.user.Name, a.user.Email, a.user.CreatedAt.Format("2006-01-02"))
}

// reportError renders workflow failures: one line per invalid field, or a
// single generic line for anything else (storage failures included).
func (a *App) reportError(err error) {
	var fe identity.FieldErrors
	if !errors.As(err, &fe) {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	for _, f := range fields {
		fmt.Printf("  %s: %s\n", f, fe[identity.Field(f)].Message)
	}
}
