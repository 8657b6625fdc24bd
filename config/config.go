package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JwtSecret  string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	ServerPort string
	Issuer     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	// RoutingRulesPath points to an optional YAML file overriding the
	// built-in routing rule table.
	RoutingRulesPath string

	// GeocoderProvider selects the geocoding backend: "nominatim" or "offline".
	GeocoderProvider string
	GeocoderBaseURL  string

	// CommunityVerifyThreshold is the vote count at which a report earns
	// the community verified badge.
	CommunityVerifyThreshold int
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "civicseva")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("ISSUER", "civicseva")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio123")
	MinioBucket = getEnv("MINIO_BUCKET", "civicseva-media")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	RoutingRulesPath = getEnv("ROUTING_RULES_PATH", "")

	GeocoderProvider = getEnv("GEOCODER_PROVIDER", "offline")
	GeocoderBaseURL = getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")

	CommunityVerifyThreshold, _ = strconv.Atoi(getEnv("COMMUNITY_VERIFY_THRESHOLD", "3"))
	if CommunityVerifyThreshold <= 0 {
		CommunityVerifyThreshold = 3
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
