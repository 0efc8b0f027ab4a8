// Command import loads catalog entries from an xlsx workbook into the
// products table. Expected columns, with a header row:
//
//	title | author | description | image_url | price | category
//
// Usage: import -file catalog.xlsx [-sheet Sheet1]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fitbooks-backend/internal/config"
	"fitbooks-backend/internal/domains/product/model"
	"fitbooks-backend/internal/domains/product/repository"
	"fitbooks-backend/internal/domains/product/service"
	"fitbooks-backend/internal/infrastructure/database"
	"fitbooks-backend/pkg/logger"
)

func main() {
	filePath := flag.String("file", "", "path to the xlsx workbook")
	sheet := flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}
	logger.Init(os.Getenv("APP_ENV"))

	if err := run(*filePath, *sheet); err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}
}

func run(filePath, sheet string) error {
	products, err := readWorkbook(filePath, sheet)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("no product rows found in %s", filePath)
	}

	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	productService := service.NewProductService(
		repository.NewPostgresProductRepository(db.Pool),
	)

	count, err := productService.ImportProducts(ctx, products)
	if err != nil {
		return err
	}

	log.Info().Int("count", count).Str("file", filePath).Msg("Products imported")
	return nil
}

// readWorkbook parses the sheet into catalog entries. The first row is a
// header and is skipped; fully empty rows are ignored.
func readWorkbook(filePath, sheet string) ([]*model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	var products []*model.Product
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		product, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func parseRow(row []string) (*model.Product, error) {
	product := &model.Product{
		Title:       cell(row, 0),
		Author:      cell(row, 1),
		Description: cell(row, 2),
		ImageURL:    cell(row, 3),
		Category:    cell(row, 5),
	}

	priceStr := cell(row, 4)
	if priceStr == "" {
		return nil, fmt.Errorf("missing price")
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", priceStr, err)
	}
	product.Price = price

	return product, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
