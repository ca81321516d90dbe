package repositories

import (
	"context"
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/job-board/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one connection shared by every request, writes are serialized by it
	sqlDB.SetMaxOpenConns(1)

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.User{})
	if err != nil {
		return fmt.Errorf("failed to migrate User entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.JobPosting{})
	if err != nil {
		return fmt.Errorf("failed to migrate JobPosting entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Application{})
	if err != nil {
		return fmt.Errorf("failed to migrate Application entity: %w", err)
	}

	return nil
}

func (c *DbContext) Ping(ctx context.Context) error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
