package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bazarlens/bazarlens/api"
	"github.com/bazarlens/bazarlens/config"
	"github.com/bazarlens/bazarlens/internal/cache"
	"github.com/bazarlens/bazarlens/internal/corpus"
	"github.com/bazarlens/bazarlens/internal/engine"
	internalErrors "github.com/bazarlens/bazarlens/internal/errors"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "8080", "Port to run the server on")
		corpusPath = flag.String("corpus", "./data/combined_corpus.md", "Path to the corpus markdown file")
		configPath = flag.String("config", "", "Path to the YAML settings file (optional)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("BazarLens - product retrieval over the Daraz + StarTech corpus\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                  # Serve on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                      # Serve on port 9000\n", os.Args[0])
		fmt.Printf("  %s --corpus ./data/corpus.md        # Use a custom corpus file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("BazarLens v1.0.0\n")
		return
	}

	// Load .env if present; environment wins over file values
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings from %s: %v", *configPath, err)
	}
	if problems := settings.Validate(); len(problems) > 0 {
		log.Fatalf("Invalid settings: %v", problems)
	}

	log.Printf("Using corpus file: %s (dialect: %s)", *corpusPath, settings.Dialect)
	loader := corpus.FileLoader{Path: *corpusPath}

	eng, err := engine.NewEngine(settings, loader, cache.NewMemory())
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	// Build the first index up front. An empty or missing corpus is
	// not fatal: the server starts and a later reload can succeed once
	// the data pipeline has run.
	if err := eng.Rebuild(); err != nil {
		if errors.Is(err, internalErrors.ErrEmptyCorpus) || errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: No corpus data yet (%v). Serving without an index until the next reload.", err)
		} else {
			log.Fatalf("Failed to build initial index: %v", err)
		}
	}

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, eng)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
