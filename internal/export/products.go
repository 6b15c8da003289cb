package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var productHeaders = []string{
	"ID", "Name", "Type", "Categories", "CategoryIDs", "Price", "DiscountPrice",
	"Stock", "IsNew", "Featured", "Weight", "Dimensions", "ImageURL", "CreatedAt", "UpdatedAt",
}

// WriteProducts writes one sheet with a header row and one row per product.
func WriteProducts(w io.Writer, products []models.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range productHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.CategoryType)
		row.AddCell().SetString(strings.Join(p.Categories, ", "))

		ids := make([]string, len(p.CategoryIDs))
		for i, id := range p.CategoryIDs {
			ids[i] = strconv.FormatUint(uint64(id), 10)
		}
		row.AddCell().SetString(strings.Join(ids, ","))

		row.AddCell().SetString(money(p.Price))
		row.AddCell().SetString(money(p.DiscountPrice))
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetBool(p.IsNew)
		row.AddCell().SetBool(p.Featured)
		row.AddCell().SetString(p.Weight)
		row.AddCell().SetString(p.Dimensions)
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
