package store

import "time"

// DB is the persistence interface the app binds against.
type DB interface {
	Close() error
	Migrate() error
	SaveBlob(slot string, data []byte) error
	LoadBlob(slot string) ([]byte, error)
	RecordOpening(opening *Opening) error
	GetOpenings(limit, offset int) ([]Opening, error)
}

// Opening is one pack-opening history row. Cards holds the revealed
// cards as a JSON string so the schema never chases the reveal shape.
type Opening struct {
	ID        string    `json:"id" db:"id"`
	Pack      string    `json:"pack" db:"pack"`
	Cards     string    `json:"cards" db:"cards"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
