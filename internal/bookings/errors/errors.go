package errors

import "errors"

var (
	ErrDuplicateDate = errors.New("booking with the same date already exists")

	ErrDuplicateRoomID = errors.New("booking with the same room_id already exists")

	ErrDuplicateRoomAndDate = errors.New("booking with the same room_id and date already exists")

	// ErrDuplicate is returned for a unique index violation the repository
	// cannot attribute to one of the admission keys.
	ErrDuplicate = errors.New("booking violates a unique index")
)

// Plain text bodies of the booking admission endpoint.
const (
	MsgDuplicateDate        = "Data with the same date already exists"
	MsgDuplicateRoomID      = "Data with the same room_id already exists"
	MsgDuplicateRoomAndDate = "Data with the same room_id and date already exists"
	MsgDuplicate            = "Data already exists"
	MsgInserted             = "Data inserted successfully"
	MsgInternal             = "Internal Server Error"
)
