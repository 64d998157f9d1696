package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"orderpilot/internal/db"
	"orderpilot/internal/logger"
	"orderpilot/internal/menu"

	"github.com/joho/godotenv"
)

func main() {
	restaurantID := flag.String("restaurant", "", "restaurant id the menu belongs to")
	file := flag.String("file", "", "menu file (.pdf or .txt)")
	dryRun := flag.Bool("dry-run", false, "print parsed items instead of saving them")
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	log := logger.New(os.Getenv("LOG_LEVEL"))

	if *file == "" || (*restaurantID == "" && !*dryRun) {
		flag.Usage()
		os.Exit(2)
	}

	body, err := os.ReadFile(*file)
	if err != nil {
		log.Error("read menu file", "file", *file, "err", err)
		os.Exit(1)
	}

	extractor := menu.NewPDFToText()
	if !menu.IsPlainText(*file) && !extractor.Available() {
		log.Error("pdftotext is required for pdf menus")
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		if err := menu.ValidateFileExtension(*file); err != nil {
			log.Error("unsupported file", "err", err)
			os.Exit(1)
		}
		raw, err := extractor.Extract(ctx, *file, body)
		if err != nil {
			log.Error("extract failed", "err", err)
			os.Exit(1)
		}
		for _, it := range menu.ParseItems(menu.CleanText(raw)) {
			fmt.Printf("%-12s %-40s %8.2f\n", it.Category, it.Name, it.Price)
		}
		return
	}

	pgDB, err := db.ConnectPostgres(ctx, os.Getenv("DATABASE_URL"), logger.For(log, "db"))
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer pgDB.Close()

	service := menu.NewService(
		menu.NewPostgresRepository(pgDB),
		nil,
		extractor,
		nil,
		logger.For(log, "menu"),
	)

	res, err := service.ImportMenu(ctx, *restaurantID, filepath.Base(*file), body)
	if err != nil {
		log.Error("menu import failed", "err", err)
		os.Exit(1)
	}

	fmt.Printf("imported %d items for restaurant %s\n", len(res.Items), *restaurantID)
}
