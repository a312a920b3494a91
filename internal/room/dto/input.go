package dto

type CreateRoomInput struct {
	Name        string
	Description *string
}

// UpdateRoomInput carries only the fields the caller wants changed.
type UpdateRoomInput struct {
	Name        *string
	Description *string
}
