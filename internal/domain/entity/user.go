package entity

import "time"

// User vista de solo lectura de un usuario del sistema.
type User struct {
	ID        string
	Username  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}
