package dto

type CreateItemInput struct {
	Name        string
	SN          string
	Description *string
}

// UpdateItemInput carries only the fields the caller wants changed.
type UpdateItemInput struct {
	Name        *string
	Description *string
	SN          *string
}
