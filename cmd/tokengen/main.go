package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/auth"
	"github.com/joho/godotenv"
)

// tokengen печатает JWT для номера студента или преподавателя, нужен для отладки API
func main() {
	identifier := flag.String("id", "", "student or teacher identifier (token subject)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *identifier == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required but not set")
	}

	token, err := auth.NewService(secret, *ttl).GenerateToken(*identifier, time.Now())
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
