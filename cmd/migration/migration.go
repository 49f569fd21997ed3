package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"clinic-service/migrations"
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

// Usage: migration [up|down|force <version>]
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	db := database.NewMongoDB(driverConfig)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Client().Disconnect(ctx)
	}()

	dbDriver, err := mongodb.WithInstance(db.Client(), &mongodb.Config{DatabaseName: driverConfig.MongoDB.DbName})
	if err != nil {
		log.Fatalf("Failed to create mongodb migration driver: %v", err)
	}

	srcDriver, err := iofs.New(migrations.FS, "mongo")
	if err != nil {
		log.Fatalf("Failed to open migration source: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "mongodb", dbDriver)
	if err != nil {
		log.Fatalf("Failed to create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	command, args := "up", []string{}
	if len(os.Args) > 1 {
		command, args = os.Args[1], os.Args[2:]
	}

	err = run(m, command, args, log)
	if err != nil {
		log.Fatalf("Migration %s failed: %v", command, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatalf("Failed to read migration version: %v", err)
	}
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migration finished")
}

func run(m *migrate.Migrate, command string, args []string, log *logrus.Logger) error {
	var err error
	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		if len(args) == 0 {
			return errors.New("force requires a version")
		}
		version, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			return convErr
		}
		err = m.Force(version)
	default:
		return errors.New("unknown command " + command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No migration to apply")
		return nil
	}
	return err
}
