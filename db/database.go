package db

import (
	"fmt"
	"log"

	"github.com/civicseva/civicseva-api/config"
	"github.com/civicseva/civicseva-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func createEnums() {
	enums := []string{
		`DO $$ BEGIN CREATE TYPE user_role AS ENUM ('citizen', 'staff', 'admin'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE report_status AS ENUM ('submitted', 'acknowledged', 'in_progress', 'resolved', 'closed', 'rejected'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE report_priority AS ENUM ('low', 'medium', 'high', 'urgent'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE report_category AS ENUM ('roads', 'lighting', 'sanitation', 'water', 'parks', 'safety', 'noise', 'other'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE notification_type AS ENUM ('report_submitted', 'status_update', 'assignment', 'resolution', 'feedback_request'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
	}

	for _, enum := range enums {
		if err := DB.Exec(enum).Error; err != nil {
			log.Printf("Failed to create enum: %s, error: %v", enum, err)
		}
	}
}

func Init() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	if err := Migrate(); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}

	log.Println("Database connected and migrated")
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}

// Migrate runs the enum, table and view migrations against the current DB.
// Used by integration tests that supply their own connection.
func Migrate() error {
	dropViews()
	createEnums()

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.ReportUpdate{},
		&models.ReportVote{},
		&models.Notification{},
		&models.Attachment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	createViews()
	return nil
}

func dropViews() {
	views := []string{
		"report_vote_counts",
		"department_report_views",
	}

	for _, view := range views {
		if err := DB.Exec(fmt.Sprintf("DROP VIEW IF EXISTS %s CASCADE", view)).Error; err != nil {
			log.Printf("Failed to drop view %s: %v", view, err)
		}
	}
}

func createViews() {
	views := []string{
		`CREATE OR REPLACE VIEW report_vote_counts AS
		SELECT
		r.id AS report_id,
		COUNT(v.id) AS vote_count
		FROM reports r
		LEFT JOIN report_votes v ON v.report_id = r.id
		GROUP BY r.id;`,

		`CREATE OR REPLACE VIEW department_report_views AS
		SELECT
		r.department,
		r.status,
		r.priority,
		r.category,
		r.created_at,
		r.updated_at
		FROM reports r
		WHERE r.department IS NOT NULL;`,
	}

	for _, view := range views {
		if err := DB.Exec(view).Error; err != nil {
			log.Printf("Failed to create view: %v", err)
		}
	}
}
