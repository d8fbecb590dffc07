package config

import (
	"os"
)

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Database configuration struct.
type DatabaseConfiguration struct {
	URL string
}

// Bucket configuration for shipping analysis logs.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// Analysis holds the pipeline policy flags and the provider base URL.
type AnalysisConfiguration struct {
	OpenDotaBaseURL         string
	CacheOnly               bool
	DisableBenchmarks       bool
	AvoidExternalWhenCached bool
}

var (
	Redis    RedisConfiguration
	Database DatabaseConfiguration
	Bucket   BucketConfiguration
	Analysis AnalysisConfiguration
)

// Load the variables.
func LoadEnv() {
	// Load the Redis configuration.
	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Load the database configuration.
	Database.URL = os.Getenv("DATABASE_URL")

	// Load the bucket configuration.
	Bucket.Region = os.Getenv("BUCKET_REGION")
	Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	Bucket.LogBucket = os.Getenv("BUCKET_LOG_BUCKET")

	// Load the analysis policy flags.
	Analysis.OpenDotaBaseURL = os.Getenv("OPENDOTA_BASE_URL")
	if Analysis.OpenDotaBaseURL == "" {
		Analysis.OpenDotaBaseURL = "https://api.opendota.com/api"
	}
	Analysis.CacheOnly = os.Getenv("ANALYSIS_CACHE_ONLY") == "true"
	Analysis.DisableBenchmarks = os.Getenv("ANALYSIS_DISABLE_BENCHMARKS") == "true"
	Analysis.AvoidExternalWhenCached = os.Getenv("ANALYSIS_AVOID_EXTERNAL_WHEN_CACHED") == "true"
}
