package common

import "fmt"

func RedisKeySnapshot(userID string) string {
	return fmt.Sprintf("starpath:snapshot:%s", userID)
}

func RedisKeyLeaderBoard(periodKey string) string {
	return fmt.Sprintf("starpath:leaderboard:%s", periodKey)
}

// RedisKeyLeaderBoardBuilding is where a leaderboard is rebuilt before it
// replaces the live key.
func RedisKeyLeaderBoardBuilding(periodKey string) string {
	return fmt.Sprintf("starpath:leaderboard:%s:building", periodKey)
}
