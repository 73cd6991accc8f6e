package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rcalhoun/summit-backend/config"
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/app/repository"
	"github.com/rcalhoun/summit-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// catalogRow is one workbook row: a variant with one role price. Rows
// sharing a SKU attach extra prices to the same variant; rows sharing a
// product name attach variants to the same product.
type catalogRow struct {
	ProductName string
	Category    string
	SKU         string
	CatalogCode string
	OptionLabel string
	RoleCode    string
	Price       float64
}

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

	catalogRepo := repository.NewCatalogRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readCatalogRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total catalog rows to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	products := make(map[string]*model.Product)
	imported := 0

	for _, row := range rows {
		product, ok := products[row.ProductName]
		if !ok {
			product = &model.Product{
				Name:     row.ProductName,
				Category: model.ProductCategory(row.Category),
			}
			if err := catalogRepo.CreateProduct(product); err != nil {
				log.Fatal("Failed to create product:", err)
			}
			products[row.ProductName] = product
		}

		variant, err := catalogRepo.FindVariantBySKU(row.SKU)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatal("Failed to look up variant:", err)
			}
			variant = &model.Variant{
				ProductID:   product.ID,
				SKU:         row.SKU,
				CatalogCode: row.CatalogCode,
				OptionLabel: row.OptionLabel,
			}
			if err := catalogRepo.CreateVariant(variant); err != nil {
				log.Fatal("Failed to create variant:", err)
			}
		}

		price := &model.VariantPrice{
			VariantID: variant.ID,
			RoleCode:  row.RoleCode,
			Price:     row.Price,
		}
		if err := catalogRepo.CreateVariantPrice(price); err != nil {
			log.Fatal("Failed to create variant price:", err)
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Products: %d, price rows: %d\n", len(products), imported)
}

// readCatalogRows parses the workbook. Expected columns:
// product name, category, sku, catalog code, option label, role code, price
func readCatalogRows(filePath string) ([]catalogRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var result []catalogRow
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			// Header row
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 7 {
			skippedCount++
			continue
		}

		productName := strings.TrimSpace(row[0])
		category := strings.TrimSpace(row[1])
		sku := strings.TrimSpace(row[2])
		catalogCode := strings.TrimSpace(row[3])
		optionLabel := strings.TrimSpace(row[4])
		roleCode := strings.TrimSpace(row[5])
		priceStr := strings.TrimSpace(row[6])

		if productName == "" || sku == "" || catalogCode == "" || roleCode == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		result = append(result, catalogRow{
			ProductName: productName,
			Category:    category,
			SKU:         sku,
			CatalogCode: catalogCode,
			OptionLabel: optionLabel,
			RoleCode:    roleCode,
			Price:       price,
		})
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d invalid rows\n", skippedCount)
	}

	return result, nil
}
