package domain

// Stats holds the landing page counters.
type Stats struct {
	Donors    int64
	NGOs      int64
	Donations int64
	Campaigns int64
}
