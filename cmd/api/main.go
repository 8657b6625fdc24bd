package main

import (
	"log"

	"github.com/civicseva/civicseva-api/config"
	"github.com/civicseva/civicseva-api/db"
	"github.com/civicseva/civicseva-api/geocode"
	"github.com/civicseva/civicseva-api/middleware"
	"github.com/civicseva/civicseva-api/minio"
	"github.com/civicseva/civicseva-api/repositories"
	"github.com/civicseva/civicseva-api/routes"
	"github.com/civicseva/civicseva-api/routing"
	"github.com/civicseva/civicseva-api/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and migrate schemas
	db.Init()

	// Initialize object storage for report attachments
	minio.InitMinio()

	rules, err := routing.LoadRules(config.RoutingRulesPath)
	if err != nil {
		log.Fatalf("Failed to load routing rules: %v", err)
	}

	var geocoder geocode.Geocoder
	switch config.GeocoderProvider {
	case "nominatim":
		geocoder = geocode.NewNominatim(config.GeocoderBaseURL)
	default:
		geocoder = geocode.Offline{}
	}

	repos := repositories.New()
	svcs := services.New(repos, services.Options{
		Rules:           rules,
		Geocoder:        geocoder,
		VerifyThreshold: config.CommunityVerifyThreshold,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, svcs, repos)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
