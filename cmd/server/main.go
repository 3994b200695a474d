package main

import (
	"flag"
	"log"

	"k8s.io/klog/v2"

	"github.com/careerladder/backend/config"
	"github.com/careerladder/backend/internal/eventbus"
	"github.com/careerladder/backend/internal/handler"
	"github.com/careerladder/backend/internal/pkg/database"
	"github.com/careerladder/backend/internal/repository"
	"github.com/careerladder/backend/internal/router"
	"github.com/careerladder/backend/internal/service"
	"github.com/careerladder/backend/internal/subscriber"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg := config.GetConfig()

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	checklistRepo := repository.NewChecklistRepository(db)
	userChecklistRepo := repository.NewUserChecklistRepository(db)

	bus := eventbus.NewBus()
	subscriber.NewInstanceEventSubscriber().Register(bus)

	checklistService := service.NewChecklistService(checklistRepo)
	userChecklistService := service.NewUserChecklistService(checklistRepo, userChecklistRepo, bus)

	// Seed any checklist versions shipped alongside the binary.
	seedService := service.NewSeedService(checklistService)
	if err := seedService.LoadDir(cfg.Seed.Dir); err != nil {
		log.Fatalf("Failed to seed checklists: %v", err)
	}

	checklistHandler := handler.NewChecklistHandler(checklistService)
	userChecklistHandler := handler.NewUserChecklistHandler(userChecklistService)

	r := router.Setup(cfg, checklistHandler, userChecklistHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
