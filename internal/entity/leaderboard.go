package entity

import (
	"fmt"
	"time"

	"github.com/go4it-sports/starpath/pkg/dateutil"
)

type LeaderBoardPeriodType interface {
	Period() string
	Start() time.Time
	End() time.Time
}

type LeaderBoardPeriodWeek struct {
	current time.Time
}

func NewLeaderBoardPeriodWeek(current time.Time) LeaderBoardPeriodWeek {
	return LeaderBoardPeriodWeek{current: current}
}

func (p LeaderBoardPeriodWeek) Period() string {
	year, week := p.current.ISOWeek()
	return fmt.Sprintf("week:%d:%d", week, year)
}

func (p LeaderBoardPeriodWeek) Start() time.Time {
	return dateutil.CurrentWeek(p.current)
}

func (p LeaderBoardPeriodWeek) End() time.Time {
	return p.Start().AddDate(0, 0, 7)
}

type LeaderBoardPeriodMonth struct {
	current time.Time
}

func NewLeaderBoardPeriodMonth(current time.Time) LeaderBoardPeriodMonth {
	return LeaderBoardPeriodMonth{current: current}
}

func (p LeaderBoardPeriodMonth) Period() string {
	return fmt.Sprintf("month:%d:%d", p.current.Month(), p.current.Year())
}

func (p LeaderBoardPeriodMonth) Start() time.Time {
	return dateutil.CurrentMonth(p.current)
}

func (p LeaderBoardPeriodMonth) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// LeaderBoardPeriodTotal covers every point event ever recorded.
type LeaderBoardPeriodTotal struct{}

func (LeaderBoardPeriodTotal) Period() string {
	return "total"
}

func (LeaderBoardPeriodTotal) Start() time.Time {
	return time.Unix(0, 0).UTC()
}

func (LeaderBoardPeriodTotal) End() time.Time {
	return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}

type UserStatistic struct {
	UserID string
	Points int64
}
