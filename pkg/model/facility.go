package model

// FacilityNotFoundMessage is the body answered for a room_id no facility has.
const FacilityNotFoundMessage = "There is no such facility"
