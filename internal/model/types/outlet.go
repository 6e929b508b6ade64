package types

type CreateOutletRequest struct {
	Name           string `json:"name" validate:"required,max=256"`
	Type           string `json:"type" validate:"omitempty,outlettype"`
	ComplaintEmail string `json:"complaintEmail" validate:"omitempty,email"`
	ComplaintURL   string `json:"complaintUrl" validate:"omitempty,url"`
	Notes          string `json:"notes" validate:"omitempty,max=2048"`
}

// SeedOutlet is one entry of an outlet seed file.
type SeedOutlet struct {
	ID             string `yaml:"id" validate:"required,max=64"`
	Name           string `yaml:"name" validate:"required"`
	Type           string `yaml:"type" validate:"omitempty,outlettype"`
	ComplaintEmail string `yaml:"complaintEmail" validate:"omitempty,email"`
	ComplaintURL   string `yaml:"complaintUrl" validate:"omitempty,url"`
	Notes          string `yaml:"notes"`
}

type SeedOutletFile struct {
	Outlets []SeedOutlet `yaml:"outlets" validate:"dive"`
}
