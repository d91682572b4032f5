package clients

// UpsertClientRequest carries client fields for create and update.
type UpsertClientRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"omitempty,email,max=200"`
	Phone   string  `json:"phone" validate:"omitempty,max=40"`
	Company string  `json:"company" validate:"omitempty,max=200"`
	Notes   *string `json:"notes,omitempty"`
}
