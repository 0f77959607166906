package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cinemavault/internal/config"
	"cinemavault/internal/http-api/models"
)

// ConnectDB opens the PostgreSQL connection through the pgx stdlib driver,
// verifies it, and runs schema migration and genre seeding.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	// the join table keeps its own id column, register it before automigrate
	if err := db.SetupJoinTable(&models.Movie{}, "Genres", &models.MovieGenre{}); err != nil {
		return fmt.Errorf("failed to set up movie_genres join table: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Movie{},
		&models.MovieGenre{},
		&models.SavedMovie{},
		&models.Rating{},
		&models.UserPermission{},
	); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if err := seedGenres(db); err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}

	logger.Info("Database migrations applied successfully")
	return nil
}

var defaultGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Fantasy", "Horror", "Mystery", "Romance", "Sci-Fi", "Thriller",
}

func seedGenres(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Genre{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	genres := make([]models.Genre, 0, len(defaultGenres))
	for _, name := range defaultGenres {
		genres = append(genres, models.Genre{Name: name})
	}
	return db.Create(&genres).Error
}
