package types

type LeaderboardQuery struct {
	GroupBy string `query:"groupBy"`
	Limit   int    `query:"limit" validate:"min=1,max=500"`
}
