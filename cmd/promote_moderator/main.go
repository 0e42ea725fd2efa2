package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/appnity/prepportal-backend/internal/config"
	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <username|email>", os.Args[0])
	}
	login := os.Args[1]

	config.LoadConfig()
	database.Connect()

	user, err := services.PromoteModerator(context.Background(), database.DB, login, "")
	if err != nil {
		log.Fatalf("Failed to promote %s: %v", login, err)
	}

	fmt.Printf("Successfully promoted %s (ID: %s) to moderator.\n", user.Username, user.ID)
}
