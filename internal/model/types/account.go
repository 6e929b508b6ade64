package types

type RegisterRequest struct {
	Email         string `json:"email" validate:"required,email,max=254"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
	Name          string `json:"name" validate:"omitempty,max=128"`
	PreferredTone string `json:"preferredTone" validate:"omitempty,tone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePreferencesRequest is a partial update: absent fields are left as they are.
type UpdatePreferencesRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=128"`
	PreferredTone *string `json:"preferredTone" validate:"omitempty,tone"`
}
