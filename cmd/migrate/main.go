package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/you/classhub/internal/config"
	"github.com/you/classhub/internal/infrastructure/auth"
	"github.com/you/classhub/internal/infrastructure/database"
	"github.com/you/classhub/internal/services"
)

// Creates the tables and seeds the RBAC policies, then reports what is there.
func main() {
	path := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("database connection ok")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	fmt.Println("migrations applied")

	cas, err := auth.NewCasbinService(db)
	if err != nil {
		log.Fatalf("Failed to initialize casbin: %v", err)
	}
	rules, err := config.LoadPolicies(cfg.Casbin.PolicyPath)
	if err != nil {
		log.Fatalf("Failed to load policies: %v", err)
	}
	added, err := services.SeedPolicies(services.NewPolicyService(cas.E), rules)
	if err != nil {
		log.Fatalf("Failed to seed policies: %v", err)
	}
	fmt.Printf("policies seeded: %d new, %d total\n", added, len(rules))

	for _, table := range []string{"users", "homeworks", "completions", "notifications", "casbin_rule"} {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			log.Fatalf("Failed to query %s: %v", table, err)
		}
		fmt.Printf("%-14s %d rows\n", table, count)
	}
}
