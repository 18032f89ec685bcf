// Command mkcatalog writes a sample product catalog into the datasets
// directory: one CSV file per online store plus one XLSX file, matching the
// formats the catalog loader accepts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
)

type catalogRow struct {
	Name            string  `csv:"name"`
	Category        string  `csv:"category"`
	Price           float64 `csv:"price"`
	Brand           string  `csv:"brand"`
	Rating          float64 `csv:"rating"`
	Stock           string  `csv:"stock"`
	DiscountPercent int     `csv:"discount_percent"`
	Description     string  `csv:"description"`
	ModelID         string  `csv:"model_id"`
	URL             string  `csv:"url"`
}

var amazonRows = []catalogRow{
	{"Apple iPhone 15 Pro", "smartphone", 999.99, "Apple", 4.8, "In Stock", 5, "Latest iPhone with A17 Pro chip", "IP15PRO256", "https://www.amazon.com/dp/B0CHX1W1ZY"},
	{"Samsung Galaxy S24 Ultra", "smartphone", 1299.99, "Samsung", 4.7, "In Stock", 10, "Samsung flagship smartphone with S-Pen", "SGS24U512", "https://www.amazon.com/dp/B0CM59T1SX"},
	{"Sony WH-1000XM5 Headphones", "headphones", 399.99, "Sony", 4.9, "In Stock", 15, "Premium noise cancelling wireless headphones", "WH1000XM5", "https://www.amazon.com/dp/B09XS7JWHH"},
	{"Nike Air Max 270", "shoes", 150.00, "Nike", 4.6, "In Stock", 20, "Comfortable running shoes with Air cushioning", "AIRMAX270", "https://www.amazon.com/dp/B07B3QGW8N"},
	{"Dell XPS 15 Laptop", "laptop", 1499.99, "Dell", 4.5, "In Stock", 5, "Powerful laptop with OLED display", "XPS159530", "https://www.amazon.com/dp/B0CJHQDZ2P"},
	{"Kindle Paperwhite", "ebook reader", 139.99, "Amazon", 4.8, "In Stock", 10, "Waterproof e-reader with adjustable light", "KINDLEPW11", "https://www.amazon.com/dp/B09SWDBZQ4"},
	{"Apple Watch Series 9", "smartwatch", 399.00, "Apple", 4.7, "In Stock", 8, "Advanced smartwatch with health monitoring", "AWS945MM", "https://www.amazon.com/dp/B0CHWJQ85L"},
	{"Bose QuietComfort 45", "headphones", 329.00, "Bose", 4.8, "In Stock", 12, "Noise cancelling headphones with premium sound", "BOSEQC45", "https://www.amazon.com/dp/B098FKXT8L"},
	{"Logitech MX Master 3S", "mouse", 99.99, "Logitech", 4.6, "In Stock", 15, "Wireless mouse with ergonomic design", "MXM3S", "https://www.amazon.com/dp/B09HMK8M2P"},
	{"Canon EOS R50 Camera", "camera", 679.00, "Canon", 4.4, "In Stock", 7, "Mirrorless camera for photography enthusiasts", "EOSR50KIT", "https://www.amazon.com/dp/B0BV8MPP4Q"},
}

var flipkartRows = []catalogRow{
	{"OnePlus 12", "smartphone", 849.99, "OnePlus", 4.6, "In Stock", 12, "Flagship killer smartphone", "OP12PRO", "https://www.flipkart.com/oneplus-12"},
	{"MacBook Air M2", "laptop", 1099.99, "Apple", 4.8, "In Stock", 8, "Lightweight laptop with Apple Silicon", "MBAM2", "https://www.flipkart.com/macbook-air-m2"},
	{"JBL Flip 6 Speaker", "speaker", 129.99, "JBL", 4.7, "In Stock", 20, "Portable Bluetooth speaker", "JBLFLIP6", "https://www.flipkart.com/jbl-flip-6"},
	{"Adidas Ultraboost 22", "shoes", 180.00, "Adidas", 4.5, "In Stock", 15, "Running shoes with Boost technology", "UBOOST22", "https://www.flipkart.com/adidas-ultraboost"},
	{"LG OLED C3 TV", "television", 1499.00, "LG", 4.9, "In Stock", 10, "4K OLED smart TV", "OLED55C3", "https://www.flipkart.com/lg-oled-c3"},
	{"GoPro HERO12", "camera", 399.99, "GoPro", 4.6, "In Stock", 5, "Action camera for adventures", "HERO12", "https://www.flipkart.com/gopro-hero12"},
	{"Microsoft Surface Pro 9", "tablet", 999.99, "Microsoft", 4.5, "In Stock", 12, "2-in-1 laptop and tablet", "SPRO9", "https://www.flipkart.com/surface-pro-9"},
	{"Fitbit Charge 6", "fitness tracker", 159.99, "Fitbit", 4.4, "In Stock", 18, "Advanced fitness and health tracker", "FITCHG6", "https://www.flipkart.com/fitbit-charge-6"},
	{"Philips Sonicare Toothbrush", "personal care", 89.99, "Philips", 4.7, "In Stock", 10, "Electric toothbrush with smart features", "SONIC9900", "https://www.flipkart.com/philips-sonicare"},
	{"Instant Pot Duo", "kitchen appliance", 79.99, "Instant Pot", 4.8, "In Stock", 25, "Multi-functional pressure cooker", "IPDUO7", "https://www.flipkart.com/instant-pot-duo"},
}

// cromaRows go into an XLSX file so the spreadsheet path of the loader has
// real data to chew on. Categories overlap with the CSV stores to produce
// cross-store price comparisons.
var cromaRows = []catalogRow{
	{"Apple iPhone 15 Pro 256GB", "smartphone", 1049.00, "Apple", 4.7, "In Stock", 3, "A17 Pro chip with titanium design", "IP15PRO256C", "https://www.croma.com/iphone-15-pro"},
	{"Sony WH-1000XM5", "headphones", 379.00, "Sony", 4.8, "In Stock", 18, "Industry leading noise cancellation", "WH1000XM5C", "https://www.croma.com/sony-wh1000xm5"},
	{"Samsung Galaxy S24 Ultra 512GB", "smartphone", 1249.00, "Samsung", 4.6, "In Stock", 8, "Galaxy AI flagship with S-Pen", "SGS24U512C", "https://www.croma.com/galaxy-s24-ultra"},
	{"JBL Charge 5 Speaker", "speaker", 149.99, "JBL", 4.6, "In Stock", 22, "Portable speaker with powerbank", "JBLCHG5", "https://www.croma.com/jbl-charge-5"},
	{"HP Spectre x360 Laptop", "laptop", 1399.00, "HP", 4.4, "In Stock", 9, "Convertible laptop with OLED touch display", "SPECX360", "https://www.croma.com/hp-spectre-x360"},
	{"Canon EOS R50", "camera", 659.00, "Canon", 4.5, "In Stock", 6, "Compact mirrorless camera with kit lens", "EOSR50C", "https://www.croma.com/canon-eos-r50"},
}

var xlsxHeaders = []string{
	"name", "category", "price", "brand", "rating",
	"stock", "discount_percent", "description", "model_id", "url",
}

func main() {
	outdir := flag.String("d", "datasets", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "mkcatalog:", err)
		os.Exit(1)
	}

	stores := map[string][]catalogRow{
		"amazon.csv":   amazonRows,
		"flipkart.csv": flipkartRows,
	}
	for name, rows := range stores {
		if err := writeCSV(filepath.Join(*outdir, name), rows); err != nil {
			fmt.Fprintln(os.Stderr, "mkcatalog:", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d products\n", name, len(rows))
	}

	if err := writeXLSX(filepath.Join(*outdir, "croma.xlsx"), cromaRows); err != nil {
		fmt.Fprintln(os.Stderr, "mkcatalog:", err)
		os.Exit(1)
	}
	fmt.Printf("croma.xlsx: %d products\n", len(cromaRows))
	fmt.Printf("catalog written to %s\n", *outdir)
}

func writeCSV(path string, rows []catalogRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

func writeXLSX(path string, rows []catalogRow) error {
	xlsx := excelize.NewFile()
	sheet := xlsx.GetSheetName(1)

	for col, h := range xlsxHeaders {
		xlsx.SetCellValue(sheet, cell(col, 1), h)
	}
	for i, r := range rows {
		values := []interface{}{
			r.Name, r.Category, r.Price, r.Brand, r.Rating,
			r.Stock, r.DiscountPercent, r.Description, r.ModelID, r.URL,
		}
		for col, v := range values {
			xlsx.SetCellValue(sheet, cell(col, i+2), v)
		}
	}
	return xlsx.SaveAs(path)
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}
