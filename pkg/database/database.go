package database

import (
	"ai_hub_backend/internal/config"
	"ai_hub_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates or updates the schema for every persisted model. Also used
// by tests against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.QuizSubmission{},
		&model.SuccessStory{},
		&model.StoryLike{},
		&model.AIConversation{},
		&model.AIMessage{},
		&model.AIHelperRequest{},
	)
}
