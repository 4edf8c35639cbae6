package domain

// Destination is the landing page a client should navigate to.
type Destination string

const (
	DestinationSignIn          Destination = "sign-in"
	DestinationDonorDashboard  Destination = "donor-dashboard"
	DestinationNGODashboard    Destination = "ngo-dashboard"
	DestinationNGOProfileSetup Destination = "ngo-profile-setup"
	DestinationCampaigns       Destination = "campaigns"
)

var destinationPaths = map[Destination]string{
	DestinationSignIn:          "/auth",
	DestinationDonorDashboard:  "/donor-dashboard",
	DestinationNGODashboard:    "/ngo-dashboard",
	DestinationNGOProfileSetup: "/ngo-profile",
	DestinationCampaigns:       "/campaigns",
}

// Path returns the client route for d.
func (d Destination) Path() string {
	if p, ok := destinationPaths[d]; ok {
		return p
	}
	return "/"
}
