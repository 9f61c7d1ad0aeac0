package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"fakenews-detector/cache"
	"fakenews-detector/config"
	"fakenews-detector/handlers"
	"fakenews-detector/logger"
	"fakenews-detector/services"
)

func main() {
	logger.Setup()
	log.Println("🚀 Starting Fake News Detector...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Failed to load configuration: ", err)
	}
	log.Printf("✓ Configuration loaded")

	analyzerService, err := services.LoadAnalyzerService(cfg.ModelPath, cfg.VectorizerPath)
	if err != nil {
		log.Fatalf("❌ Failed to load artifacts (%s, %s): %v. Run the trainer first.", cfg.ModelPath, cfg.VectorizerPath, err)
	}
	log.Printf("✓ Model loaded: %d features", analyzerService.NumFeatures())

	cache.InitRedis(context.Background(), cfg.RedisUrl)
	defer cache.Close()

	var limiter *services.RateLimiter
	if cache.RDB != nil {
		limiter = services.NewRateLimiter(cache.NewCounter(cache.RDB), cfg.RateLimitPerMinute)
		log.Printf("  - Rate limit: %d analyses per minute", cfg.RateLimitPerMinute)
	} else {
		log.Printf("  - Rate limit: disabled")
	}
	if cfg.AdminToken == "" {
		log.Printf("  - Admin API: disabled (ADMIN_TOKEN not set)")
	}

	dashboardHandler := handlers.NewDashboardHandler(analyzerService, limiter, int64(cfg.MaxUploadMB)<<20)
	adminHandler := handlers.NewAdminHandler(cfg, analyzerService)
	mux := handlers.NewRouter(dashboardHandler, adminHandler)
	log.Println("✓ Services initialized")

	addr := ":" + cfg.Port
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("🎯 Server listening on http://localhost%s\n", addr)
	fmt.Printf("🧠 Model: %s | Vectorizer: %s\n", cfg.ModelPath, cfg.VectorizerPath)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("\n📝 Example:")
	fmt.Printf(`   curl -F "text=Drinking salt water cures cancer" http://localhost%s/analyze`+"\n", addr)
	fmt.Println("\n" + strings.Repeat("=", 50) + "\n")

	log.Println("✓ Ready to accept requests...")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("❌ Server failed: ", err)
	}
}
