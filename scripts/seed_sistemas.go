package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
)

// loadSistemas reads a JSON array of sistemas, or returns the defaults when path is empty
func loadSistemas(path string) ([]models.Sistema, error) {
	if path == "" {
		return models.DefaultSistemas(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var sistemas []models.Sistema
	if err := json.Unmarshal(raw, &sistemas); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return sistemas, nil
}

func main() {
	file := flag.String("file", "", "JSON file with [{\"nome\": ..., \"categoria\": ...}]; defaults to the built-in catalogue")
	flag.Parse()

	if err := logging.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := config.InitMongoDB(); err != nil {
		log.Fatal("Failed to initialize MongoDB:", err)
	}
	config.InitRedis()

	sistemas, err := loadSistemas(*file)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := services.NewMongoStore(config.MongoDB, config.AppConfig.FuncionarioCollection, config.AppConfig.SistemaCollection)

	// Existing names are kept; only new ones are inserted
	if err := store.InsertSistemas(ctx, sistemas); err != nil {
		log.Fatalf("Failed to insert sistemas: %v", err)
	}

	if config.Redis != nil {
		if err := services.NewSistemaCache(config.Redis, config.AppConfig.RedisTTL).Invalidate(ctx); err != nil {
			log.Printf("Failed to invalidate sistemas cache: %v", err)
		}
	}

	catalogue, err := store.ListSistemas(ctx)
	if err != nil {
		log.Fatalf("Failed to list sistemas: %v", err)
	}

	fmt.Printf("Catalogue now has %d sistemas:\n", len(catalogue))
	for _, sistema := range catalogue {
		fmt.Printf("  - %s (%s)\n", sistema.Nome, sistema.Categoria)
	}
}
