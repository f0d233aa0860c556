package domain

// SlotSummary is the slice of slot fields embedded in booking reads
type SlotSummary struct {
	ID         string `json:"id"`
	SlotNumber string `json:"slotNumber"`
	Floor      int    `json:"floor"`
	Section    string `json:"section"`
}

// UserSummary is the slice of user fields embedded in booking reads
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingRecord pairs a booking with summaries of its slot and user.
// Either reference may be nil when the row has been deleted since.
type BookingRecord struct {
	Booking
	Slot *SlotSummary
	User *UserSummary
}
