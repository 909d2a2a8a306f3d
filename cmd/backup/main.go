package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"recipe-share/internal/backup"
	"recipe-share/internal/config"
	"recipe-share/internal/logging"
	"recipe-share/internal/repository/sqlstore"
	"recipe-share/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}

	if err := cfg.ValidateBackup(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	if cfg.Database.Driver != sqlstore.DriverSQLite {
		logger.Fatalf("backups are only supported for the sqlite driver, got %q", cfg.Database.Driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	runner, err := backup.NewRunner(db, storageSvc, backup.Options{
		Bucket:    cfg.Backup.Bucket,
		KeyPrefix: cfg.Backup.KeyPrefix,
		Retain:    cfg.Backup.Retain,
	}, logger)
	if err != nil {
		logger.Fatalf("setup backup: %v", err)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		if result != nil {
			logger.WithField("location", result.Location).Errorf("backup uploaded but pruning failed: %v", err)
		}
		logger.Fatalf("backup: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"location": result.Location,
		"size":     result.Size,
		"pruned":   len(result.Pruned),
	}).Info("backup complete")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Backup.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Backup.Bucket, cfg.Backup.Region)
	return storage.NewS3Service(client), nil
}
