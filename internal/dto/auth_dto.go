package dto

// LoginRequest authenticates a user against one hotel scope.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	HotelUID string `json:"hotelUid" validate:"required"`
}

// LoginResponse carries the token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RoleRequest creates or updates a role document.
type RoleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Permissions []string `json:"permissions"`
}

// UserUpdateRequest updates a user profile.
type UserUpdateRequest struct {
	FirstName *string             `json:"firstName"`
	LastName  *string             `json:"lastName"`
	Language  *string             `json:"language"`
	Active    *bool               `json:"active"`
	Roles     map[string][]string `json:"roles"` // hotelUid -> role names
}

// UserPermissionsRequest replaces a user's flat permission grants.
type UserPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

// PermissionCheckResponse is the route-guard check result.
type PermissionCheckResponse struct {
	Feature string `json:"feature"`
	Action  string `json:"action"`
	Allowed bool   `json:"allowed"`
}

// MailRequest sends a plain-text mail through the async mail queue.
type MailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text" validate:"required"`
}
