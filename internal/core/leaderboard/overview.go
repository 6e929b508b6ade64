package leaderboard

import (
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
)

// Totals are the plain row counts the overview needs besides complaints.
type Totals struct {
	Incidents int
	Users     int
	Outlets   int
}

type PlatformOverview struct {
	TotalIncidents  int `json:"totalIncidents"`
	TotalComplaints int `json:"totalComplaints"`
	TotalUsers      int `json:"totalUsers"`
	TotalOutlets    int `json:"totalOutlets"`
	SentComplaints  int `json:"sentComplaints"`
	// DraftComplaints counts every complaint that is not sent, including
	// those that already received a response.
	DraftComplaints   int        `json:"draftComplaints"`
	AvgSeverityRating null.Float `json:"avgSeverityRating"`
}

// Overview summarizes the platform from the row totals and the status and
// rating of every complaint.
func Overview(totals Totals, complaints []*model.ComplaintFacet) *PlatformOverview {
	var ratings ratingSum
	sent := 0
	for _, complaint := range complaints {
		if complaint.Status == constant.ComplaintStatusSent {
			sent++
		}
		ratings.add(complaint.SeverityRating)
	}

	return &PlatformOverview{
		TotalIncidents:    totals.Incidents,
		TotalComplaints:   len(complaints),
		TotalUsers:        totals.Users,
		TotalOutlets:      totals.Outlets,
		SentComplaints:    sent,
		DraftComplaints:   len(complaints) - sent,
		AvgSeverityRating: ratings.average(),
	}
}
