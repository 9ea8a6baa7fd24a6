package model

// User identifies one task collection.
//
// Username is intended to be unique but carries no database constraint: the
// registration path enforces it with a pre-check, matching the single-writer
// assumption of the store.
type User struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Username string `gorm:"index"`
}
