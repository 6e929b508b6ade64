package types

type CreateSuggestionRequest struct {
	OutletName     string `json:"outletName" validate:"required,max=256"`
	OutletType     string `json:"outletType" validate:"omitempty,suggestionoutlettype"`
	WebsiteURL     string `json:"websiteUrl" validate:"omitempty,url"`
	SuggestedBy    string `json:"suggestedBy" validate:"omitempty,max=256"`
	AdditionalInfo string `json:"additionalInfo" validate:"omitempty,max=4096"`
}
