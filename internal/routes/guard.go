package routes

import (
	"github.com/wolfeidau/transferctl/internal/session"
)

// Route is a navigation destination.
type Route int

const (
	RouteRoot Route = iota
	RouteLogin
	RouteDashboard
	RouteVehicles
	RouteRequests
	RouteTransfers
)

func (r Route) String() string {
	switch r {
	case RouteRoot:
		return "/"
	case RouteLogin:
		return "/login"
	case RouteDashboard:
		return "/dashboard"
	case RouteVehicles:
		return "/vehicles"
	case RouteRequests:
		return "/requests"
	case RouteTransfers:
		return "/transfers"
	default:
		return "/unknown"
	}
}

// Protected reports whether the route requires an authenticated session.
// Only the login view and the root are public.
func (r Route) Protected() bool {
	switch r {
	case RouteLogin, RouteRoot:
		return false
	default:
		return true
	}
}

// Decision is the outcome of evaluating a navigation.
type Decision int

const (
	// DecisionWait means the session is still resolving; render nothing
	// and make no redirect decision yet.
	DecisionWait Decision = iota

	// DecisionRender means the requested route may render.
	DecisionRender

	// DecisionRedirectLogin sends the user to the login view.
	DecisionRedirectLogin

	// DecisionRedirectDashboard sends the user to the dashboard.
	DecisionRedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRender:
		return "render"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectDashboard:
		return "redirect-dashboard"
	default:
		return "unknown"
	}
}

// Evaluate decides whether route is reachable given the session status.
// It must be re-run on every navigation and on every session change, so a
// logout immediately evicts the user from protected views.
func Evaluate(route Route, status session.Status) Decision {
	// Still resolving a persisted token. Rendering either the login view
	// or protected content here would flash the wrong view.
	if status == session.StatusAuthenticating {
		return DecisionWait
	}

	authenticated := status == session.StatusAuthenticated

	if !authenticated {
		if route.Protected() {
			return DecisionRedirectLogin
		}
		if route == RouteRoot {
			return DecisionRedirectLogin
		}
		return DecisionRender
	}

	if route == RouteLogin || route == RouteRoot {
		return DecisionRedirectDashboard
	}

	return DecisionRender
}
