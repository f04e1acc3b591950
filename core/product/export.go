package product

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

var catalogHeader = []string{
	"ID", "Title", "Category", "Color", "Brand",
	"Price", "Promotion", "Unit Price", "Quantity", "Product Of The Day", "Updated At",
}

// WriteCatalog renders products as a single-sheet workbook.
func WriteCatalog(w io.Writer, products []Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range catalogHeader {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Title)
		row.AddCell().SetString(p.Category.Title)
		row.AddCell().SetString(p.Color.Title)
		row.AddCell().SetString(p.Brand.Title)
		row.AddCell().SetString(p.Price.String())

		promo := ""
		if p.Promotion != nil {
			promo = p.Promotion.String()
		}
		row.AddCell().SetString(promo)
		row.AddCell().SetString(p.UnitPrice().String())
		row.AddCell().SetInt(p.Quantity)
		row.AddCell().SetBool(p.ProductOfTheDay)
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
