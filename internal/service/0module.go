package service

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewMail,
		NewHealth,
		NewLetter,
		NewOutlet,
		NewArchive,
		NewAccount,
		NewIncident,
		NewComplaint,
		NewSuggestion,
		NewLeaderboard,
	))
}
