package main

import (
	"log"
	"os"

	"github.com/campushq/sitebuilder/internal/config"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/server"
	"github.com/campushq/sitebuilder/internal/template"
	"github.com/campushq/sitebuilder/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.ValidateJWTSecret(); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	requiredEnvVars := map[string]string{
		"DB_HOST":     os.Getenv("DB_HOST"),
		"DB_NAME":     os.Getenv("DB_NAME"),
		"DB_USER":     os.Getenv("DB_USER"),
		"DB_PASSWORD": os.Getenv("DB_PASSWORD"),
	}

	for key, value := range requiredEnvVars {
		if value == "" {
			log.Fatalf("❌ Required environment variable %s is not set", key)
		}
	}
	log.Println("✅ Required environment variables validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== TEMPLATE BUNDLE STORE ==========
	if err := utils.InitLocalBundles(cfg.BundleDir); err != nil {
		log.Fatal("❌ Failed to initialize bundle directory:", err)
	}

	useS3 := os.Getenv("USE_S3")
	if useS3 == "true" {
		s3Bucket := os.Getenv("S3_BUCKET")
		s3Region := os.Getenv("S3_REGION")
		s3Prefix := os.Getenv("S3_BUNDLE_PREFIX")

		if s3Bucket != "" && s3Region != "" {
			if err := utils.InitS3(s3Bucket, s3Region, s3Prefix); err != nil {
				log.Println("⚠️  S3 initialization failed:", err)
				log.Println("⚠️  Falling back to local bundle directory")
				utils.SetBundleMode(true)
			} else {
				log.Println("✅ S3 initialized successfully")
				log.Printf("☁️  Template bundles from S3: %s (region: %s)", s3Bucket, s3Region)
			}
		} else {
			log.Println("⚠️  USE_S3=true but S3_BUCKET or S3_REGION not configured")
			log.Println("⚠️  Falling back to local bundle directory")
		}
	} else {
		log.Printf("💾 Template bundles from LOCAL directory (%s)", cfg.BundleDir)
	}

	// ========== SEED TEMPLATES ==========
	if err := template.SeedDefaultTemplates(); err != nil {
		log.Println("⚠️  Failed to seed built-in templates:", err)
	} else {
		log.Println("✅ Built-in templates seeded")
	}

	if err := template.SyncBundles(); err != nil {
		log.Println("⚠️  Template bundle sync failed:", err)
	} else {
		log.Println("✅ Template bundles synced")
	}

	// ========== START SERVER ==========
	app := server.New(db)

	log.Printf("🚀 Site builder starting on %s", cfg.ServerAddr)
	log.Printf("📦 Template bundle store: %s", utils.GetBundleMode())
	log.Printf("🔐 JWT Authentication: Enabled")

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
