package letter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
)

func sampleIncident() *model.Incident {
	return &model.Incident{
		Date:           time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		ProgramName:    null.StringFrom("Today"),
		PresenterName:  null.StringFrom("Jane Doe"),
		Description:    "Claimed the country has maxed out its credit card.",
		InfractionType: null.StringFrom(constant.InfractionHouseholdAnalogy),
		Outlet:         &model.Outlet{Name: "BBC Radio 4"},
	}
}

func TestBuildPrompt(t *testing.T) {
	p, err := BuildPrompt(sampleIncident(), Writer{Name: "Sam", Tone: constant.ToneAcademic}, 0)
	require.NoError(t, err)

	assert.Contains(t, p, "- Media Outlet: BBC Radio 4")
	assert.Contains(t, p, "- Program: Today")
	assert.Contains(t, p, "- Date: Monday, 4 March 2024")
	assert.Contains(t, p, "- Time: Not specified")
	assert.Contains(t, p, "- Presenter: Jane Doe")
	assert.Contains(t, p, "- Media URL: Not available")
	assert.Contains(t, p, "- Type of Infraction: comparing government finances to household budgets")
	assert.Contains(t, p, "- Tone: academic")
	assert.Contains(t, p, "- Writer's name: Sam")
	assert.Contains(t, p, "complaint #1 about this incident")
	assert.Contains(t, p, Strategies[0])
	assert.Contains(t, p, Emphases[0])
}

func TestBuildPromptDefaults(t *testing.T) {
	incident := &model.Incident{
		Date:        time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		Description: "Said the debt will bankrupt our grandchildren.",
		Outlet:      &model.Outlet{Name: "GB News"},
	}

	p, err := BuildPrompt(incident, Writer{}, 11)
	require.NoError(t, err)

	assert.Contains(t, p, "- Program: Unknown program")
	assert.Contains(t, p, "- Presenter: Not specified")
	assert.Contains(t, p, "- Type of Infraction: economic misinformation")
	assert.Contains(t, p, "- Tone: professional")
	assert.Contains(t, p, "- Writer's name: A concerned viewer")
	assert.Contains(t, p, "complaint #12 about this incident")
	assert.Contains(t, p, Strategies[11%len(Strategies)])
	assert.Contains(t, p, Emphases[11%len(Emphases)])
}

func TestVariation(t *testing.T) {
	for i := 0; i < 48; i++ {
		s1, e1 := Variation(i)
		s2, e2 := Variation(i + 1)
		assert.False(t, s1 == s2 && e1 == e2, "index %d and %d share a variation", i, i+1)
	}

	s, e := Variation(len(Strategies))
	assert.Equal(t, Strategies[0], s)
	assert.Equal(t, Emphases[len(Strategies)%len(Emphases)], e)
}

func TestDescribeInfraction(t *testing.T) {
	assert.Equal(t, "creating unfounded concern about government debt levels", DescribeInfraction(constant.InfractionDebtScare))
	assert.Equal(t, "economic misinformation", DescribeInfraction("unknown"))
	assert.Equal(t, "economic misinformation", DescribeInfraction(""))
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Complaint: Today - 2024-03-04", Subject(sampleIncident()))

	incident := sampleIncident()
	incident.ProgramName = null.String{}
	assert.Equal(t, "Complaint: Broadcast - 2024-03-04", Subject(incident))
}
