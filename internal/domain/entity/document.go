package entity

import "time"

// Document documento de soporte (remisión, orden de compra...) al que se asocian operaciones.
type Document struct {
	ID        string
	Number    string // único
	Date      time.Time
	Notes     string
	IsActive  bool
	CreatedAt time.Time
}
