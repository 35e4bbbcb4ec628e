package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lkwall/portfolio-site/api"
	"github.com/lkwall/portfolio-site/config"
	"github.com/lkwall/portfolio-site/database"
	"github.com/lkwall/portfolio-site/models"
	"github.com/lkwall/portfolio-site/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	if err := checkRequiredConfig(c); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := openDatabase(c, newLogger)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Create tables if absent; the only migration mechanism the site has.
	if err := db.AutoMigrate(&models.Project{}, &models.Session{}); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	isDev := config.GetString(c, "APP_ENV", "development") != "production"
	notifier := services.NewResendNotifier(
		config.GetString(c, "RESEND_API_KEY", ""),
		config.GetString(c, "CONTACT_FROM_EMAIL", ""),
		config.GetString(c, "CONTACT_TO_EMAIL", ""),
		isDev,
	)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, notifier)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// openDatabase connects to the store selected by DB_TYPE: postgres for the
// hosted deployment, sqlite for running locally.
func openDatabase(c map[string]string, gormLogger logger.Interface) (*gorm.DB, error) {
	dbType := config.GetString(c, "DB_TYPE", "sqlite")
	fmt.Printf("DB_TYPE: %s\n", dbType)

	switch dbType {
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "POSTGRES_HOST", ""),
			config.GetString(c, "POSTGRES_USER", ""),
			config.GetString(c, "POSTGRES_PASSWORD", ""),
			config.GetString(c, "POSTGRES_DBNAME", ""),
			config.GetString(c, "POSTGRES_PORT", "5432"),
		)
		fmt.Println("Connecting to Postgres database...")
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			Logger:      gormLogger,
		})
	case "sqlite":
		path := config.GetString(c, "SQLITE_PATH", "portfolio.db")
		fmt.Println("Connecting to SQLite database...")
		return gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: gormLogger,
		})
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", dbType)
	}
}

// checkRequiredConfig fails fast on a missing secret instead of starting a
// server that cannot log anyone in or deliver contact mail.
func checkRequiredConfig(c map[string]string) error {
	required := []string{"APP_SECRET", "SITE_PASSWORD"}

	if config.GetString(c, "DB_TYPE", "sqlite") == "postgres" {
		required = append(required,
			"POSTGRES_HOST", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DBNAME")
	}

	if config.GetString(c, "APP_ENV", "development") == "production" {
		required = append(required,
			"RESEND_API_KEY", "CONTACT_FROM_EMAIL", "CONTACT_TO_EMAIL")
	}

	for _, key := range required {
		if _, err := config.MustGetString(c, key); err != nil {
			return err
		}
	}
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
