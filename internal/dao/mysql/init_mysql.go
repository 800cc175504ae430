// Package mysql owns the database connection, schema migration and the
// Repositories aggregate handed to the service layer.
package mysql

import (
	"fmt"

	"apna_room_server/internal/config"
	"apna_room_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init opens the MySQL connection, migrates the schema and returns the
// repository aggregate. Failures are fatal since nothing works without
// the database.
func Init() *Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("mysql connect failed", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Listing{},
		&model.SeekerPreferences{},
		&model.Match{},
		&model.Conversation{},
		&model.Message{},
		&model.SavedListing{},
	); err != nil {
		zap.L().Fatal("mysql migrate failed", zap.Error(err))
	}

	return NewRepositories(db)
}
