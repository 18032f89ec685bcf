// Package catalog loads heterogeneous store files into the in-memory
// product catalog and matches products against predicted labels or
// free-text keywords.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shoplens/shoplens/internal/domain"
)

var titleCaser = cases.Title(language.English)

// Load reads every tabular file in dir (non-recursive, csv and xlsx) and
// returns the normalized product records plus the number of source files
// successfully opened. A file that fails to parse is logged and skipped
// without aborting the load; an empty directory is a valid empty catalog.
func Load(dir, currency string) ([]domain.Product, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, errors.Wrapf(err, "read datasets dir %s", dir)
	}

	products := make([]domain.Product, 0, 64)
	sourceCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}
		store := storeName(entry.Name())
		path := filepath.Join(dir, entry.Name())

		var rows [][]string
		var perr error
		switch ext {
		case ".csv":
			rows, perr = readCSV(path, &sourceCount)
		case ".xlsx":
			rows, perr = readXLSX(path, &sourceCount)
		}
		if perr != nil {
			zap.S().Warnf("error reading %s: %s", entry.Name(), perr)
			continue
		}

		for _, row := range tabulate(rows) {
			rec, ok := buildProduct(row, store, currency)
			if !ok {
				continue
			}
			rec.ID = len(products) + 1
			products = append(products, rec)
		}
	}

	zap.S().Infof("loaded %d products from %d stores", len(products), sourceCount)
	return products, sourceCount, nil
}

// storeName derives a display name from a source filename: strip the
// extension, title-case each underscore-separated part.
func storeName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(base, "_")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "_")
}

func readCSV(path string, sourceCount *int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	*sourceCount++

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, df.Err
	}
	return df.Records(), nil
}

func readXLSX(path string, sourceCount *int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	*sourceCount++
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	return f.GetRows(sheet), nil
}

// tabulate turns header+data rows into per-row maps with lowercased,
// trimmed column names.
func tabulate(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			m[header[i]] = strings.TrimSpace(cell)
		}
		out = append(out, m)
	}
	return out
}

// buildProduct constructs a catalog record from one normalized row. Rows
// without both a name and a usable price are skipped.
func buildProduct(row map[string]string, store, currency string) (domain.Product, bool) {
	name := row["name"]
	priceStr := row["price"]
	if name == "" || priceStr == "" {
		return domain.Product{}, false
	}
	price, err := cast.ToFloat64E(priceStr)
	if err != nil || price < 0 {
		zap.S().Debugf("skipping row %q: bad price %q", name, priceStr)
		return domain.Product{}, false
	}

	rec := domain.Product{
		Store:           store,
		Price:           price,
		Currency:        currency,
		DiscountPercent: cast.ToFloat64(row["discount_percent"]),
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err == nil {
		_ = dec.Decode(row)
	}

	rec.Name = name
	rec.Category = strings.ToLower(rec.Category)
	if rec.Category == "" {
		rec.Category = "unknown"
	}
	if rec.URL == "" {
		rec.URL = "#"
	}
	if rec.Rating == "" {
		rec.Rating = "4.0"
	}
	if rec.Brand == "" {
		rec.Brand = "Generic"
	} else {
		rec.Brand = titleCaser.String(strings.ToLower(rec.Brand))
	}
	if rec.ModelID == "" {
		rec.ModelID = "N/A"
	}
	if rec.Stock == "" {
		rec.Stock = "In Stock"
	}
	if rec.Description == "" {
		rec.Description = "No description available."
	}
	return rec, true
}
