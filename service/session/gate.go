package session

import (
	"strings"

	"travelease/model"
)

type access int

const (
	public access = iota
	guestOnly
	protected
	customerOnly
	adminOnly
	root
)

var routes = map[string]access{
	"/":                 root,
	"/signin":           guestOnly,
	"/signup":           guestOnly,
	"/about":            public,
	"/dashboard":        customerOnly,
	"/booking":          protected,
	"/delivery-details": protected,
	"/payment":          protected,
	"/payment-success":  protected,
	"/tracking":         protected,
	"/feedback":         protected,
	"/my-bookings":      protected,
	"/admin":            adminOnly,
}

const (
	PathSignIn    = "/signin"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
)

// Decision is the outcome of one navigation check.
type Decision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}

// Home is where a signed-in user lands by default.
func Home(u *model.User) string {
	if u != nil && u.IsAdmin {
		return PathAdmin
	}
	return PathDashboard
}

func classify(path string) access {
	if a, ok := routes[path]; ok {
		return a
	}
	if strings.HasPrefix(path, PathAdmin+"/") {
		return adminOnly
	}
	return public
}

// CleanPath drops query, fragment and trailing slashes.
func CleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Decide evaluates a single navigation to path for u (nil when signed out).
// It is pure and must be called on every navigation.
func Decide(path string, u *model.User) Decision {
	path = CleanPath(path)
	switch classify(path) {
	case root:
		return Decision{Redirect: Home(u)}
	case guestOnly:
		if u != nil {
			return Decision{Redirect: Home(u)}
		}
	case protected:
		if u == nil {
			return Decision{Redirect: PathSignIn}
		}
	case customerOnly:
		if u == nil {
			return Decision{Redirect: PathSignIn}
		}
		if u.IsAdmin {
			return Decision{Redirect: PathAdmin}
		}
	case adminOnly:
		if u == nil {
			return Decision{Redirect: PathSignIn}
		}
		if !u.IsAdmin {
			return Decision{Redirect: PathDashboard}
		}
	}
	return Decision{Allow: true}
}

// Resolve follows redirects until a page allows u and returns that page.
func Resolve(path string, u *model.User) string {
	path = CleanPath(path)
	for i := 0; i < 4; i++ {
		d := Decide(path, u)
		if d.Allow {
			return path
		}
		path = d.Redirect
	}
	return path
}
