package dto

// SupplierRequest creates or updates a supplier document.
type SupplierRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contactPerson"`
	OrderEmail    *string `json:"orderEmail" validate:"omitempty,email"`
	Notes         *string `json:"notes"`
	Active        *bool   `json:"active"`
}
