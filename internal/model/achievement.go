package model

type GetAchievementsRequest struct{}

type GetAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

type GetMyAchievementsRequest struct{}

type GetMyAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

type MarkAchievementsNotifiedRequest struct{}

type MarkAchievementsNotifiedResponse struct{}
