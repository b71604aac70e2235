package models

// User is a learner. There are no credentials; a session simply points at a user id.
type User struct {
	ID       int64  `json:"id" db:"id" gorm:"primaryKey"`
	Username string `json:"username" db:"username" gorm:"size:80;not null;uniqueIndex"`
}

// TableName pins the gorm table name to the one used by the SQL migrations
func (User) TableName() string { return "users" }
