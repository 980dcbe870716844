package export

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"

	"jozveh_bot/internal/models"
)

// PurchaseReport builds the admin spreadsheet: one row per user, one column
// per product, each cell concatenating the "type × qty" entries found in the
// user's approved purchases. Dormitory users sort before Tehran users, by
// display name within each group.
func PurchaseReport(users map[string]models.User, products []models.Product, purchases map[string][]models.Purchase) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Purchases")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().SetValue("نام")
	for _, p := range products {
		headerRow.AddCell().SetValue(p.Title)
	}

	type reportRow struct {
		name  string
		cells []string
	}
	rows := make([]reportRow, 0, len(users))
	for uid, u := range users {
		r := reportRow{name: u.DisplayName()}
		for _, p := range products {
			var entries []string
			for _, pur := range purchases[uid] {
				for _, it := range pur.Items {
					if it.Title == p.Title {
						entries = append(entries, it.Type+" × "+strconv.Itoa(it.Qty))
					}
				}
			}
			r.cells = append(r.cells, strings.Join(entries, " / "))
		}
		rows = append(rows, r)
	}

	sort.Slice(rows, func(i, j int) bool {
		ti, tj := isTehran(rows[i].name), isTehran(rows[j].name)
		if ti != tj {
			return !ti
		}
		return rows[i].name < rows[j].name
	})

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetValue(r.name)
		for _, cell := range r.cells {
			if cell == "" {
				row.AddCell().SetValue(0)
			} else {
				row.AddCell().SetValue(cell)
			}
		}
	}
	return file, nil
}

// WritePurchaseReport renders the report straight to an xlsx file on disk.
func WritePurchaseReport(path string, users map[string]models.User, products []models.Product, purchases map[string][]models.Purchase) error {
	file, err := PurchaseReport(users, products, purchases)
	if err != nil {
		return err
	}
	return file.Save(path)
}

func isTehran(name string) bool { return strings.Contains(name, "تهران") }
