package statistic

import (
	"fmt"
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodTotal = "total"
)

// Periods lists every leaderboard period kept in redis.
var Periods = []string{PeriodWeek, PeriodMonth, PeriodTotal}

func ToPeriodWithTime(periodString string, current time.Time) (entity.LeaderBoardPeriodType, error) {
	switch periodString {
	case PeriodWeek:
		return entity.NewLeaderBoardPeriodWeek(current), nil
	case PeriodMonth:
		return entity.NewLeaderBoardPeriodMonth(current), nil
	case PeriodTotal:
		return entity.LeaderBoardPeriodTotal{}, nil
	}

	return nil, fmt.Errorf("invalid period, expected week, month or total, but got %s", periodString)
}

func ToPeriod(periodString string) (entity.LeaderBoardPeriodType, error) {
	return ToPeriodWithTime(periodString, time.Now())
}

// CurrentPeriods returns every period containing t.
func CurrentPeriods(t time.Time) []entity.LeaderBoardPeriodType {
	result := make([]entity.LeaderBoardPeriodType, 0, len(Periods))
	for _, p := range Periods {
		period, _ := ToPeriodWithTime(p, t)
		result = append(result, period)
	}

	return result
}
