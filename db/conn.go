// Package db contains things related to the relational store
package db

import (
	"fmt"

	"hoaxify/hoax-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	dsn := viper.GetString("db.dsn")

	switch viper.GetString("db.driver") {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(model.User{}, model.Token{}, model.Hoax{}, model.FileAttachment{})
	if err != nil {
		return fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return nil
}
