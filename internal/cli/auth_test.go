package cli

import (
	"bufio"
	"context"
	"io"
	"testing"
	"time"

	"github.com/jfmartinez/credvault/internal/identity"
)

// stubInputs replaces the interactive helpers: text prompts are answered in
// order from texts, every password prompt returns pw.
func stubInputs(t *testing.T, texts []string, pw []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			t.Fatalf("unexpected text prompt #%d", i)
		}
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		return append([]byte(nil), pw...), nil
	}

	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeWorkflow struct {
	regIn  identity.RegisterInput
	regOut *identity.Summary
	regErr error

	authIn  identity.LoginInput
	authOut *identity.Summary
	authErr error
}

func (f *fakeWorkflow) Register(_ context.Context, in identity.RegisterInput) (*identity.Summary, error) {
	f.regIn = in
	return f.regOut, f.regErr
}

func (f *fakeWorkflow) Authenticate(_ context.Context, in identity.LoginInput) (*identity.Summary, error) {
	f.authIn = in
	return f.authOut, f.authErr
}

func TestRegister_Success(t *testing.T) {
	f := &fakeWorkflow{regOut: &identity.Summary{Name: "Ana", Email: "ana@x.com"}}
	a := &App{workflow: f}

	restore := stubInputs(t, []string{"Ana", "ana@x.com"}, []byte("secret1"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	want := identity.RegisterInput{Name: "Ana", Email: "ana@x.com", Secret: "secret1", ConfirmSecret: "secret1"}
	if f.regIn != want {
		t.Fatalf("Register input mismatch: %+v", f.regIn)
	}
}

func TestRegister_FieldErrorsReported(t *testing.T) {
	f := &fakeWorkflow{regErr: identity.FieldErrors{
		identity.FieldEmail: {Reason: identity.ReasonDuplicate, Message: "email is already registered"},
	}}
	a := &App{workflow: f}

	restore := stubInputs(t, []string{"Ana", "ana@x.com"}, []byte("secret1"))
	defer restore()

	if err := a.Register(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.isLoggedIn() {
		t.Fatal("failed registration must not sign in")
	}
}

func TestLogin_Success(t *testing.T) {
	created := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	f := &fakeWorkflow{authOut: &identity.Summary{Name: "Ana", Email: "ana@x.com", CreatedAt: created}}
	a := &App{workflow: f}

	restore := stubInputs(t, []string{"ana@x.com"}, []byte("secret1"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !a.isLoggedIn() || a.user.Email != "ana@x.com" {
		t.Fatalf("unexpected session state: %+v", a.user)
	}
	if f.authIn.Secret != "secret1" {
		t.Fatalf("Login secret mismatch: %q", f.authIn.Secret)
	}
}

func TestLogin_Failure(t *testing.T) {
	f := &fakeWorkflow{authErr: identity.FieldErrors{
		identity.FieldSecret: {Reason: identity.ReasonWrongSecret, Message: "wrong password"},
	}}
	a := &App{workflow: f}

	restore := stubInputs(t, []string{"ana@x.com"}, []byte("wrong"))
	defer restore()

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.isLoggedIn() {
		t.Fatal("failed login must not sign in")
	}
}

func TestLogout(t *testing.T) {
	a := &App{user: &identity.Summary{Email: "ana@x.com"}}
	a.Logout()
	if a.isLoggedIn() {
		t.Fatal("expected logged out")
	}
}
