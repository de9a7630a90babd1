package common

// LeaderBoardConsumerGroup consumes the player events topic to keep the
// leaderboards up to date.
const LeaderBoardConsumerGroup = "starpath-leaderboard"
