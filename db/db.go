package db

import (
	"errors"
	"log"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Init opens MySQL if mysqlDSN is set, SQLite otherwise
func Init(mysqlDSN, sqliteFile string, debug bool) error {
	var dialector gorm.Dialector
	switch {
	case mysqlDSN != "":
		cfg, err := mysql.ParseDSN(mysqlDSN)
		if err != nil {
			return err
		}
		// Never log the password
		log.Printf("Record store: MySQL %s@%s/%s", cfg.User, cfg.Addr, cfg.DBName)
		dialector = gormmysql.Open(mysqlDSN)
	case sqliteFile != "":
		log.Printf("Record store: SQLite %s", sqliteFile)
		dialector = sqlite.Open(sqliteFile)
	default:
		return errors.New("no SQL database configured")
	}
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}
	Instance = db
	return nil
}
