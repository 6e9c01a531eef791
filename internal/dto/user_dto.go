package dto

// UpdateMeRequest accepts the legacy single "name" field as an alias for
// first and last name.
type UpdateMeRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
}
