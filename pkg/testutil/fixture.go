package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/go4it-sports/starpath/internal/domain/progression"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

var (
	FixtureTime = time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

	Player1 = &entity.PlayerProgress{
		UserID:          "player1",
		TotalPoints:     1200,
		CurrentLevel:    progression.CalculateLevel(1200),
		CurrentStarRank: 1,
	}

	Player2 = &entity.PlayerProgress{
		UserID:          "player2",
		TotalPoints:     300,
		CurrentLevel:    progression.CalculateLevel(300),
		CurrentStarRank: 1,
	}

	ArchivedPlayer = &entity.PlayerProgress{
		UserID:          "archived",
		TotalPoints:     5000,
		CurrentLevel:    progression.CalculateLevel(5000),
		CurrentStarRank: 2,
		ArchivedAt:      sql.NullTime{Valid: true, Time: FixtureTime},
	}

	Players = []*entity.PlayerProgress{Player1, Player2, ArchivedPlayer}

	Player1Events = []*entity.PointEvent{
		{
			SnowFlakeBase:         entity.SnowFlakeBase{ID: 1, CreatedAt: FixtureTime.AddDate(0, 0, -40)},
			UserID:                Player1.UserID,
			Type:                  entity.WorkoutVerified,
			BasePoints:            1000,
			MultiplierBasisPoints: entity.BasisPoints,
			AwardedPoints:         1000,
		},
		{
			SnowFlakeBase:         entity.SnowFlakeBase{ID: 2, CreatedAt: FixtureTime.Add(-time.Hour)},
			UserID:                Player1.UserID,
			Type:                  entity.DrillCompleted,
			BasePoints:            200,
			MultiplierBasisPoints: entity.BasisPoints,
			AwardedPoints:         200,
		},
	}

	Player2Events = []*entity.PointEvent{
		{
			SnowFlakeBase:         entity.SnowFlakeBase{ID: 3, CreatedAt: FixtureTime.Add(-2 * time.Hour)},
			UserID:                Player2.UserID,
			Type:                  entity.DrillCompleted,
			BasePoints:            300,
			MultiplierBasisPoints: entity.BasisPoints,
			AwardedPoints:         300,
		},
	}
)

// CreateFixtureDb inserts the fixture players and their ledgers. The fixture
// values are copied, so tests may change what they read back.
func CreateFixtureDb(ctx context.Context) {
	for _, p := range Players {
		copied := *p
		if err := xcontext.DB(ctx).Create(&copied).Error; err != nil {
			panic(err)
		}
	}

	for _, events := range [][]*entity.PointEvent{Player1Events, Player2Events} {
		for _, e := range events {
			copied := *e
			if err := xcontext.DB(ctx).Create(&copied).Error; err != nil {
				panic(err)
			}
		}
	}
}
