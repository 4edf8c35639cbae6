package domain

import "time"

// DonationType enumerates the in-kind categories a donor may offer.
type DonationType string

const (
	DonationTypeClothes  DonationType = "clothes"
	DonationTypeFood     DonationType = "food"
	DonationTypeMedicine DonationType = "medicine"
	DonationTypeOthers   DonationType = "others"
)

// DonationTypes lists every accepted DonationType.
var DonationTypes = []DonationType{
	DonationTypeClothes,
	DonationTypeFood,
	DonationTypeMedicine,
	DonationTypeOthers,
}

// Valid reports whether t is a known donation type.
func (t DonationType) Valid() bool {
	for _, known := range DonationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Coordinates is a device-reported position attached alongside the free-text
// location.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Donation is an immutable in-kind offer. NGOs see it when their registered
// location equals Location exactly.
type Donation struct {
	ID          string
	DonorID     string
	Type        DonationType
	Description string
	Location    string
	Quantity    string
	Coordinates *Coordinates
	CreatedAt   time.Time
}
