package entities

type BookingEmailData struct {
	GuestName          string
	SpotName           string
	SpotAddress        string
	SpotCity           string
	StartDateFormatted string
	EndDateFormatted   string
	CurrentYear        int
}
