package entity

// PointCorrection records an explicit change of a player total made by an
// admin. It is the only way a total may decrease.
type PointCorrection struct {
	Base

	UserID      string `gorm:"index"`
	Delta       int64
	Reason      string
	CorrectedBy string
}
