package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the MySQL connection. TranslateError is on so unique-key
// violations surface as gorm.ErrDuplicatedKey; the pre-insert existence
// checks are a friendly-error fast path, the constraints are the truth.
func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	DB = db
	return nil
}
