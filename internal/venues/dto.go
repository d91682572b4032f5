package venues

// UpsertSpaceRequest carries venue space fields for create and update.
type UpsertSpaceRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Capacity    int     `json:"capacity" validate:"gte=0"`
	BasePrice   float64 `json:"base_price" validate:"gte=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
