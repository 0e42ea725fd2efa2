package main

import (
	"context"
	"fmt"
	"log"

	"github.com/appnity/prepportal-backend/internal/config"
	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/services"
)

func main() {
	config.LoadConfig()
	database.Connect()

	ctx := context.Background()
	counts, err := services.GetQueueCounts(ctx, database.DB)
	if err != nil {
		log.Fatalf("Failed to count queues: %v", err)
	}

	fmt.Printf("Pending content:   %d\n", counts.PendingContent)
	fmt.Printf("Pending quiz:      %d\n", counts.PendingQuiz)
	fmt.Printf("Subjects:          %d\n", counts.Subjects)
	fmt.Printf("Students:          %d\n", counts.Students)

	settings, err := services.GetSystemSettings(ctx, database.DB)
	if err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}
	fmt.Println("Settings:")
	for k, v := range settings {
		fmt.Printf("  %-22s %s\n", k, v)
	}
}
