package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jozveh_bot/internal/models"
)

func TestPurchaseReportLayoutAndSorting(t *testing.T) {
	users := map[string]models.User{
		"1": {FirstName: "مریم", LastName: "احمدی"}, // Tehran resident
		"2": {FirstName: "علی", LastName: "رضایی", IsDorm: true, DormName: "دانش"},
	}
	products := []models.Product{
		{ID: "1", Title: "جزوه ریاضی", ColorPrice: 5000, BWPrice: 2000},
		{ID: "2", Title: "جزوه فیزیک", ColorPrice: 4000, BWPrice: 1500},
	}
	purchases := map[string][]models.Purchase{
		"2": {{
			PurchaseID: "p1",
			UserID:     2,
			Items: []models.CartItem{
				{ProductID: "1", Title: "جزوه ریاضی", Type: models.TypeColor, Qty: 2, UnitPrice: 5000},
				{ProductID: "1", Title: "جزوه ریاضی", Type: models.TypeBW, Qty: 1, UnitPrice: 2000},
			},
			Total:     12000,
			Timestamp: time.Now().UTC(),
		}},
	}

	file, err := PurchaseReport(users, products, purchases)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 3, "header plus one row per user")

	header := sheet.Rows[0]
	assert.Equal(t, "نام", header.Cells[0].Value)
	assert.Equal(t, "جزوه ریاضی", header.Cells[1].Value)
	assert.Equal(t, "جزوه فیزیک", header.Cells[2].Value)

	// dormitory user sorts before the Tehran user
	first := sheet.Rows[1]
	assert.Contains(t, first.Cells[0].Value, "علی رضایی")
	assert.Equal(t, "رنگی × 2 / سیاه و سفید × 1", first.Cells[1].Value)
	assert.Equal(t, "0", first.Cells[2].Value)

	second := sheet.Rows[2]
	assert.Contains(t, second.Cells[0].Value, "تهرانی")
	assert.Equal(t, "0", second.Cells[1].Value)
}
