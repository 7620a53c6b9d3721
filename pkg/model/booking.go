package model

// AdmissionKey holds the fields the admission check compares against
// existing bookings. date is an opaque comparable key.
type AdmissionKey struct {
	RoomID *int64 `json:"room_id" validate:"required"`
	Date   *int64 `json:"date" validate:"required"`
}
