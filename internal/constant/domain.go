package constant

const (
	ComplaintStatusDraft            = "draft"
	ComplaintStatusSent             = "sent"
	ComplaintStatusResponseReceived = "response_received"

	ToneProfessional = "professional"
	ToneAcademic     = "academic"
	TonePassionate   = "passionate"

	DefaultTone = ToneProfessional

	OutletTypeTV     = "tv"
	OutletTypeRadio  = "radio"
	OutletTypePrint  = "print"
	OutletTypeOnline = "online"
	OutletTypeOther  = "other"

	InfractionHouseholdAnalogy = "household_analogy"
	InfractionDebtScare        = "debt_scare"
	InfractionInsolvencyMyth   = "insolvency_myth"
	InfractionOther            = "other"

	MinLetterLength      = 50
	MinDescriptionLength = 10

	// RegenerationVariationOffset shifts the variation index of a regenerated
	// letter away from the ones handed out on first generation.
	RegenerationVariationOffset = 10

	// OutletRecentIncidentsLimit is the number of incidents embedded in a single outlet.
	OutletRecentIncidentsLimit = 10
)

var (
	Tones           = []string{ToneProfessional, ToneAcademic, TonePassionate}
	OutletTypes     = []string{OutletTypeTV, OutletTypeRadio, OutletTypePrint, OutletTypeOnline}
	InfractionTypes = []string{InfractionHouseholdAnalogy, InfractionDebtScare, InfractionInsolvencyMyth, InfractionOther}
)
