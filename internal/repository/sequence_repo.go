package repository

import "gorm.io/gorm"

// Sequence names used for code allocation.
const (
	SeqUnits    = "units"
	SeqProducts = "products"
)

type SequenceRepository interface {
	Next(name string) (int64, error)
}

// sequenceRepo hands out monotonically increasing numbers per named counter.
// The upsert-returning statement is a single atomic round trip, so two
// concurrent creates can never be handed the same number.
type sequenceRepo struct {
	db *gorm.DB
}

func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db}
}

func (r *sequenceRepo) Next(name string) (int64, error) {
	var value int64
	err := r.db.Raw(`
		INSERT INTO sequences (name, value)
		VALUES (?, 1)
		ON CONFLICT (name)
		DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`, name).Scan(&value).Error
	return value, err
}

// MigrateSequences creates the counter table. AutoMigrate cannot express it
// because the table has no model struct.
func MigrateSequences(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS sequences (
			name  VARCHAR(50) PRIMARY KEY,
			value BIGINT NOT NULL
		)
	`).Error
}
