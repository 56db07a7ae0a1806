package onboarding

import "github.com/okaradag/unipath/internal/app/models"

// Client-side routes the API steers users toward after authentication.
const (
	RouteLogin          = "/login"
	RoutePersonalWizard = "/onboarding"
	RouteAcademicWizard = "/onboarding/academic"
	RouteDashboard      = "/dashboard"
)

// LandingRoute resolves where a freshly authenticated user should land.
// Only a fully complete profile reaches the dashboard; every other
// status, including values this version does not know, goes back into
// the personal wizard.
func LandingRoute(status models.CompletionStatus) string {
	if status == models.CompletionComplete {
		return RouteDashboard
	}
	return RoutePersonalWizard
}
