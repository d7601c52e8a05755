package repository

import "gorm.io/gorm"

// TxRunner executes fn inside one database transaction. Services that write
// through several repositories at once depend on this instead of *gorm.DB.
type TxRunner func(fn func(tx *gorm.DB) error) error

func GormTxRunner(db *gorm.DB) TxRunner {
	return func(fn func(tx *gorm.DB) error) error {
		return db.Transaction(fn)
	}
}
