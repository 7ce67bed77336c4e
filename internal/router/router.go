// Package router maps locations to pages and applies the public/private
// access guards against the current session.
package router

import (
	"net/url"
	"strings"

	"github.com/Varun5711/wecare/internal/session"
)

type Page int

const (
	PageNotFound Page = iota
	PageHome
	PageLogin
	PageRegister
	PageForgotPassword
	PageResetPassword
	PageBookAppointment
	PageAppointments
)

type Guard int

const (
	GuardNone Guard = iota
	GuardPublic
	GuardPrivate
)

const (
	PathHome            = "/"
	PathLogin           = "/auth/login"
	PathRegister        = "/auth/register"
	PathForgotPassword  = "/auth/forgot-password"
	PathResetPassword   = "/auth/reset-password"
	PathBookAppointment = "/book-appointment"
	PathAppointments    = "/appointments"
)

type Route struct {
	Path  string
	Page  Page
	Guard Guard
}

var Routes = []Route{
	{Path: PathHome, Page: PageHome, Guard: GuardNone},
	{Path: PathLogin, Page: PageLogin, Guard: GuardPublic},
	{Path: PathRegister, Page: PageRegister, Guard: GuardPublic},
	{Path: PathForgotPassword, Page: PageForgotPassword, Guard: GuardPublic},
	{Path: PathResetPassword, Page: PageResetPassword, Guard: GuardPublic},
	{Path: PathBookAppointment, Page: PageBookAppointment, Guard: GuardPrivate},
	{Path: PathAppointments, Page: PageAppointments, Guard: GuardPrivate},
}

var notFound = Route{Page: PageNotFound, Guard: GuardNone}

// Location is a path with its query and, after a private redirect, the
// location the user originally asked for.
type Location struct {
	Path  string
	Query url.Values
	From  *Location
}

// Parse splits raw into path and query. Unparseable input yields a location
// that resolves to the not-found page.
func Parse(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{Path: raw}
	}
	path := u.Path
	if path == "" {
		path = PathHome
	}
	return Location{Path: path, Query: u.Query()}
}

func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// ResetPasswordLocation is the link the forgot-password flow hands over.
func ResetPasswordLocation(email string) Location {
	return Location{Path: PathResetPassword, Query: url.Values{"email": {email}}}
}

func Resolve(loc Location) Route {
	path := loc.Path
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
	}
	return notFound
}

type Kind int

const (
	Render Kind = iota
	Placeholder
	Redirect
)

type Decision struct {
	Kind    Kind
	Page    Page
	Chrome  bool
	To      Location
	Replace bool
}

// Public renders for signed-out users and sends signed-in users back to where
// they came from, replacing the current history entry.
func Public(snap session.Snapshot, loc Location) Decision {
	if snap.Loading {
		return Decision{Kind: Placeholder}
	}
	if snap.Authenticated() {
		to := Location{Path: PathHome}
		if loc.From != nil && loc.From.Path != "" {
			to = Location{Path: loc.From.Path, Query: loc.From.Query}
		}
		return Decision{Kind: Redirect, To: to, Replace: true}
	}
	return Decision{Kind: Render, Page: Resolve(loc).Page}
}

// Private renders inside the header/footer chrome for signed-in users and sends
// everyone else to the login page, remembering loc.
func Private(snap session.Snapshot, loc Location) Decision {
	if snap.Loading {
		return Decision{Kind: Placeholder}
	}
	if !snap.Authenticated() {
		from := loc
		from.From = nil
		return Decision{Kind: Redirect, To: Location{Path: PathLogin, From: &from}}
	}
	return Decision{Kind: Render, Page: Resolve(loc).Page, Chrome: true}
}

// Decide resolves loc and applies its route's guard.
func Decide(snap session.Snapshot, loc Location) Decision {
	route := Resolve(loc)
	switch route.Guard {
	case GuardPublic:
		return Public(snap, loc)
	case GuardPrivate:
		return Private(snap, loc)
	default:
		return Decision{Kind: Render, Page: route.Page}
	}
}
