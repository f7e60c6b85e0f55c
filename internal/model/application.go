package model

// Application is one of the fixed set of product names a release, user
// assignment, or activity record can be scoped to.
type Application string

const (
	AppNRE        Application = "NRE"
	AppPortalPlus Application = "Portal Plus"
	AppEVite      Application = "E-Vite"
	AppFast       Application = "Fast 2.0"
	AppFMS        Application = "FMS"
	AppLicensing  Application = "Licensing"
)

var applications = []Application{
	AppNRE,
	AppPortalPlus,
	AppEVite,
	AppFast,
	AppFMS,
	AppLicensing,
}

// Applications returns the full enumerated application list in display order.
// Callers must not mutate the returned slice contents through aliasing; a
// fresh copy is returned on every call.
func Applications() []Application {
	out := make([]Application, len(applications))
	copy(out, applications)
	return out
}

func IsValidApplication(app Application) bool {
	for _, a := range applications {
		if a == app {
			return true
		}
	}
	return false
}
