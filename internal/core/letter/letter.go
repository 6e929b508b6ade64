// Package letter builds the prompts and mail metadata of complaint letters.
package letter

import (
	_ "embed"
	"strings"
	"text/template"
	"time"

	"github.com/samber/lo"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
)

//go:embed prompt.tmpl
var promptTemplate string

var prompt = template.Must(template.New("prompt").Parse(promptTemplate))

const defaultInfraction = "economic misinformation"

var infractionDescriptions = map[string]string{
	constant.InfractionHouseholdAnalogy: "comparing government finances to household budgets",
	constant.InfractionDebtScare:        "creating unfounded concern about government debt levels",
	constant.InfractionInsolvencyMyth:   "suggesting the government could become insolvent in its own currency",
	constant.InfractionOther:            defaultInfraction,
}

// Strategies are the openings a letter can lead with.
var Strategies = []string{
	"Lead with the specific error made, then explain why it is incorrect using MMT principles.",
	"Lead with BBC editorial guidelines and journalism standards, then show how this broadcast violated them.",
	"Lead with the 2020 letter signed by economists calling for better economic coverage, then apply it to this specific case.",
	"Lead with MMT principles and how modern monetary systems work, then show how this broadcast contradicted them.",
	"Lead with the impact on public understanding and democracy, then explain the specific error.",
	"Lead with a comparison to how the same presenter/program has covered similar topics correctly in the past.",
	"Lead with academic and institutional sources that contradict the claim made.",
	"Lead with the practical policy implications of the misinformation.",
}

// Emphases are the requests a letter can close on.
var Emphases = []string{
	"Focus on requesting a correction to be broadcast.",
	"Focus on requesting presenter training on economics.",
	"Focus on requesting a policy review for economic coverage.",
	"Focus on requesting the Editorial Complaints Unit review the matter.",
	"Focus on the pattern of similar errors across BBC coverage.",
	"Focus on specific factual claims that can be verified or refuted.",
}

// Writer is the account a letter is written on behalf of.
type Writer struct {
	Name string
	Tone string
}

type promptData struct {
	OutletName    string
	ProgramName   string
	Date          string
	Time          string
	PresenterName string
	Description   string
	MediaURL      string
	Infraction    string
	Tone          string
	WriterName    string
	Ordinal       int
	Strategy      string
	Emphasis      string
}

// Variation picks the opening strategy and emphasis for the given variation
// index. Consecutive indexes never share both.
func Variation(index int) (strategy, emphasis string) {
	if index < 0 {
		index = -index
	}
	return Strategies[index%len(Strategies)], Emphases[index%len(Emphases)]
}

func DescribeInfraction(infractionType string) string {
	if desc, ok := infractionDescriptions[infractionType]; ok {
		return desc
	}
	return defaultInfraction
}

// BuildPrompt renders the generation prompt for a letter about incident. The
// incident must carry its Outlet. variation is usually the number of
// complaints already filed for the incident.
func BuildPrompt(incident *model.Incident, writer Writer, variation int) (string, error) {
	strategy, emphasis := Variation(variation)

	data := promptData{
		ProgramName:   incident.ProgramName.String,
		Date:          incident.Date.Format("Monday, 2 January 2006"),
		Time:          incident.Time.String,
		PresenterName: incident.PresenterName.String,
		Description:   incident.Description,
		MediaURL:      incident.MediaURL.String,
		Infraction:    DescribeInfraction(incident.InfractionType.String),
		Tone:          lo.Ternary(writer.Tone != "", writer.Tone, constant.DefaultTone),
		WriterName:    writer.Name,
		Ordinal:       variation + 1,
		Strategy:      strategy,
		Emphasis:      emphasis,
	}
	if incident.Outlet != nil {
		data.OutletName = incident.Outlet.Name
	}

	var sb strings.Builder
	if err := prompt.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Subject is the mail subject of a complaint about incident.
func Subject(incident *model.Incident) string {
	program := incident.ProgramName.String
	if program == "" {
		program = "Broadcast"
	}
	return "Complaint: " + program + " - " + incident.Date.UTC().Format(time.DateOnly)
}
