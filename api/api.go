package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/surfyhou/Dota2Analyzer/api/modules"
	"github.com/surfyhou/Dota2Analyzer/api/routes"
	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
	"github.com/surfyhou/Dota2Analyzer/pkg/config"
	"github.com/surfyhou/Dota2Analyzer/pkg/database"
	"github.com/surfyhou/Dota2Analyzer/pkg/logger"
	"github.com/surfyhou/Dota2Analyzer/pkg/redis"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	config.LoadEnv()

	ctx := context.Background()

	appLogger, err := logger.CreateLogger()
	if err != nil {
		log.Fatalf("Error creating the logger: %v", err)
	}

	redisClient, err := redis.NewClient(ctx)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	db, err := database.NewConnection()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error running the migrations: %v", err)
	}

	client := opendota.NewClient(config.Analysis.OpenDotaBaseURL)

	// Ship the analysis log to the bucket periodically.
	go func() {
		for {
			time.Sleep(time.Hour)

			objectKey := fmt.Sprintf("analysis/%s.log", time.Now().Format("2006-01-02-15-04"))
			if err := appLogger.UploadToS3Bucket(objectKey); err != nil {
				log.Printf("Couldn't send the log to s3: %v", err)

				// Clean the file in the case it was a S3 error and not a file error.
				appLogger.CleanFile()
			} else {
				log.Printf("Successfully sent log to s3 with key: %s", objectKey)
			}
		}
	}()

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		DB:     db,
		Redis:  redisClient,
		Client: client,
		Logger: appLogger,
		Config: config.Analysis,
	})

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.AnalysisHandler,
	)

	// Start the server.
	router.Run(":8080")
}
