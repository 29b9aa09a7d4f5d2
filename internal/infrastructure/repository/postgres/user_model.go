package postgres

import "time"

type userTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Email       string     `db:"email"`
	Username    string     `db:"username"`
	DisplayName string     `db:"display_name"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type userInsertModel struct {
	PublicID    string `db:"public_id"`
	Email       string `db:"email"`
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
}
