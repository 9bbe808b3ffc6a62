// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go-storefront/app"
	"go-storefront/storage"
	"go-storefront/utils"

	"go.uber.org/zap"
)

func main() {
	adminToken := flag.Bool("admin-token", false, "print an admin token for the status endpoint and exit")
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.EnvFileLoaded {
		logger.Info("No .env file found. Proceeding with environment variables.")
	}

	if *adminToken {
		token, err := utils.GenerateAdminJWT([]byte(cfg.AdminJWTSecret), "cli", time.Now())
		if err != nil {
			logger.Fatal("could not mint admin token", zap.Error(err))
		}
		fmt.Println(token)
		return
	}

	ctx := context.Background()

	kv, closeKV, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("could not open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer closeKV()

	// Initialize EmailService
	emailService, err := utils.NewEmailService(cfg, logger.Named("email"))
	if err != nil {
		logger.Fatal("could not configure email", zap.Error(err))
	}

	a, err := app.New(ctx, app.Options{
		KV:            kv,
		Logger:        logger,
		Notifier:      emailService,
		CheckoutDelay: cfg.CheckoutDelay,
		LoginDelay:    cfg.LoginDelay,
		AdminSecret:   []byte(cfg.AdminJWTSecret),
	})
	if err != nil {
		logger.Fatal("could not start storefront", zap.Error(err))
	}
	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET is not set; the admin endpoint rejects every request")
	}

	// Start the server
	logger.Info("Server is running",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("email", emailService.Enabled()),
	)
	if err := http.ListenAndServe(":"+cfg.Port, a); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// openStorage picks the durable key-value backend named by STORAGE_DRIVER
func openStorage(ctx context.Context, cfg utils.Config) (storage.KV, func(), error) {
	switch cfg.StorageDriver {
	case "file":
		kv, err := storage.OpenFileKV(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	case "memory":
		return storage.NewMemoryKV(), func() {}, nil
	case "mongo":
		// Connect to MongoDB
		client, err := utils.ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				fmt.Fprintln(os.Stderr, "mongo disconnect:", err)
			}
		}
		coll := client.Database(cfg.MongoDatabase).Collection(storage.CollectionName)
		return storage.NewMongoKV(coll), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, cfg.StorageDriver)
	}
}
