package model

type UserStatistic struct {
	UserID      string `json:"userId"`
	Points      int64  `json:"points"`
	CurrentRank int    `json:"currentRank"`
}

type GetLeaderBoardRequest struct {
	Period string `json:"period"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStatistic `json:"leaderboard"`

	// MyRank is 0 if the user is not ranked in the period.
	MyRank uint64 `json:"myRank"`
}
