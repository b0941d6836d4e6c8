package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sabimarket/sabimarket-backend/config"
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Seeds markets and their local governments from an XLSX export.
// Expected columns: local government | state | market name | location | capacity
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	markets, governments, err := readMarketsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Local governments to import: %d\n", len(governments))
	fmt.Printf("Markets to import: %d\n", len(markets))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	gormDB := db.GetDB()
	for i := range governments {
		if err := gormDB.Create(&governments[i]).Error; err != nil {
			log.Fatal("Failed to create local government:", err)
		}
	}

	// Markets reference their government by name during import.
	govByName := make(map[string]string, len(governments))
	for i := range governments {
		govByName[governments[i].Name] = governments[i].ID
	}
	for i := range markets {
		markets[i].Market.LocalGovernmentID = govByName[markets[i].GovernmentName]
		if err := gormDB.Create(&markets[i].Market).Error; err != nil {
			log.Fatal("Failed to create market:", err)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total markets imported: %d\n", len(markets))
}

type marketRow struct {
	Market         model.Market
	GovernmentName string
}

func readMarketsFromXLSX(filePath string) ([]marketRow, []model.LocalGovernment, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var markets []marketRow
	var governments []model.LocalGovernment
	seenGov := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 4 {
			skippedCount++
			continue
		}

		govName := strings.TrimSpace(row[0])
		state := strings.TrimSpace(row[1])
		marketName := strings.TrimSpace(row[2])
		location := strings.TrimSpace(row[3])
		if govName == "" || marketName == "" {
			skippedCount++
			continue
		}

		capacity := 0
		if len(row) > 4 {
			capacity, _ = strconv.Atoi(strings.TrimSpace(row[4]))
		}

		if !seenGov[govName] {
			seenGov[govName] = true
			governments = append(governments, model.LocalGovernment{
				Name:  govName,
				State: state,
			})
		}

		markets = append(markets, marketRow{
			Market: model.Market{
				Name:     marketName,
				Location: location,
				Capacity: capacity,
				IsActive: true,
			},
			GovernmentName: govName,
		})
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped rows: %d\n", skippedCount)
	}
	return markets, governments, nil
}
