package router

import (
	"testing"

	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/session"
)

var (
	loading  = session.Snapshot{State: session.StateResolving, Loading: true}
	signedIn = session.Snapshot{State: session.StateReady, User: &models.User{ID: "u1", Name: "Ada"}}
	anon     = session.Snapshot{State: session.StateReady}
)

func TestResolve(t *testing.T) {
	cases := map[string]Page{
		"/":                                  PageHome,
		"/auth/login":                        PageLogin,
		"/auth/register/":                    PageRegister,
		"/auth/forgot-password":              PageForgotPassword,
		"/auth/reset-password?email=a@b.com": PageResetPassword,
		"/book-appointment":                  PageBookAppointment,
		"/appointments":                      PageAppointments,
		"/nope":                              PageNotFound,
		"/auth":                              PageNotFound,
	}

	for raw, want := range cases {
		if got := Resolve(Parse(raw)).Page; got != want {
			t.Errorf("Resolve(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParse_KeepsQuery(t *testing.T) {
	loc := Parse("/auth/reset-password?email=ada%40example.com")

	if loc.Query.Get("email") != "ada@example.com" {
		t.Errorf("expected email query, got '%s'", loc.Query.Get("email"))
	}
	if ResetPasswordLocation("ada@example.com").String() != "/auth/reset-password?email=ada%40example.com" {
		t.Errorf("unexpected reset link '%s'", ResetPasswordLocation("ada@example.com").String())
	}
}

func TestPrivate_LoadingShowsPlaceholder(t *testing.T) {
	d := Private(loading, Parse("/appointments"))
	if d.Kind != Placeholder {
		t.Errorf("expected placeholder, got %v", d.Kind)
	}
}

func TestPrivate_RedirectsToLoginWithFrom(t *testing.T) {
	d := Private(anon, Parse("/appointments"))

	if d.Kind != Redirect || d.To.Path != PathLogin {
		t.Fatalf("expected redirect to login, got %+v", d)
	}
	if d.To.From == nil || d.To.From.Path != PathAppointments {
		t.Errorf("expected from to be /appointments, got %+v", d.To.From)
	}
	if d.Replace {
		t.Error("expected a push, not a replace")
	}
}

func TestPrivate_RendersWithChrome(t *testing.T) {
	d := Private(signedIn, Parse("/book-appointment"))

	if d.Kind != Render || d.Page != PageBookAppointment || !d.Chrome {
		t.Errorf("expected chrome render of booking, got %+v", d)
	}
}

func TestPublic_RedirectsBackToFrom(t *testing.T) {
	from := Parse("/appointments")
	loc := Location{Path: PathLogin, From: &from}

	d := Public(signedIn, loc)
	if d.Kind != Redirect || d.To.Path != PathAppointments || !d.Replace {
		t.Errorf("expected replace redirect to /appointments, got %+v", d)
	}
}

func TestPublic_RedirectKeepsFromQuery(t *testing.T) {
	from := Parse("/book-appointment?speciality=cardiology")
	loc := Location{Path: PathLogin, From: &from}

	d := Public(signedIn, loc)
	if d.To.String() != "/book-appointment?speciality=cardiology" {
		t.Errorf("expected redirect to keep the query, got '%s'", d.To.String())
	}
}

func TestPublic_RedirectsHomeWithoutFrom(t *testing.T) {
	d := Public(signedIn, Parse("/auth/register"))
	if d.Kind != Redirect || d.To.Path != PathHome {
		t.Errorf("expected redirect to /, got %+v", d)
	}
}

func TestPublic_RendersForAnonymous(t *testing.T) {
	d := Public(anon, Parse("/auth/login"))
	if d.Kind != Render || d.Page != PageLogin || d.Chrome {
		t.Errorf("expected bare login render, got %+v", d)
	}
}

func TestDecide_HomeAndNotFoundUnguarded(t *testing.T) {
	if d := Decide(loading, Parse("/")); d.Kind != Render || d.Page != PageHome {
		t.Errorf("expected home to render while loading, got %+v", d)
	}
	if d := Decide(anon, Parse("/missing")); d.Kind != Render || d.Page != PageNotFound {
		t.Errorf("expected not found, got %+v", d)
	}
}

func TestHistory_LoginRoundTrip(t *testing.T) {
	h := NewHistory(Parse("/"))
	h.Push(Parse("/appointments"))

	cur := h.Apply(Decide(anon, h.Current()))
	if cur.Path != PathLogin {
		t.Fatalf("expected login, got %s", cur.Path)
	}

	cur = h.Apply(Decide(signedIn, cur))
	if cur.Path != PathAppointments {
		t.Fatalf("expected appointments after login, got %s", cur.Path)
	}
	if h.Len() != 3 {
		t.Errorf("expected login entry to be replaced, got %d entries", h.Len())
	}

	prev, ok := h.Back()
	if !ok || prev.Path != PathAppointments {
		t.Errorf("unexpected back target %+v", prev)
	}
}
