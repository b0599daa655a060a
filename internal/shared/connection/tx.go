package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// WithTx returns a gorm handle that runs its statements on tx.
// A nil tx gives back db unchanged.
func WithTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	sess := db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	sess.Statement.ConnPool = tx
	return sess
}
