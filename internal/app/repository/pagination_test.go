package repository

import (
	"fmt"
	"testing"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPaginationTest(t *testing.T, count int) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	lg := &model.LocalGovernment{Name: "Ikeja", State: "Lagos"}
	require.NoError(t, testDB.Create(lg).Error)

	for i := 0; i < count; i++ {
		market := &model.Market{
			LocalGovernmentID: lg.ID,
			Name:              fmt.Sprintf("Market %02d", i),
			Location:          "Lagos",
			Capacity:          50,
			IsActive:          true,
		}
		require.NoError(t, testDB.Create(market).Error)
	}
	return testDB
}

func TestPaginate(t *testing.T) {
	t.Run("splits rows into full and partial pages", func(t *testing.T) {
		testDB := setupPaginationTest(t, 21)

		page, err := Paginate[model.Market](testDB.Model(&model.Market{}), PageFilter{
			PageNumber: 1,
			PageSize:   10,
			SortBy:     "name",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(21), page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Data, 10)
		assert.Equal(t, "Market 00", page.Data[0].Name)

		last, err := Paginate[model.Market](testDB.Model(&model.Market{}), PageFilter{
			PageNumber: 3,
			PageSize:   10,
			SortBy:     "name",
		})
		require.NoError(t, err)
		assert.Len(t, last.Data, 1)
		assert.Equal(t, "Market 20", last.Data[0].Name)
	})

	t.Run("clamps page number and size below one", func(t *testing.T) {
		testDB := setupPaginationTest(t, 3)

		page, err := Paginate[model.Market](testDB.Model(&model.Market{}), PageFilter{
			PageNumber: 0,
			PageSize:   -5,
			SortBy:     "name",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, 1, page.PageSize)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("descending sort reverses the order", func(t *testing.T) {
		testDB := setupPaginationTest(t, 5)

		page, err := Paginate[model.Market](testDB.Model(&model.Market{}), PageFilter{
			PageNumber: 1,
			PageSize:   5,
			SortBy:     "name",
			SortDesc:   true,
		})
		require.NoError(t, err)
		require.Len(t, page.Data, 5)
		assert.Equal(t, "Market 04", page.Data[0].Name)
	})

	t.Run("missing sort key is rejected", func(t *testing.T) {
		testDB := setupPaginationTest(t, 1)

		_, err := Paginate[model.Market](testDB.Model(&model.Market{}), PageFilter{
			PageNumber: 1,
			PageSize:   10,
		})
		assert.ErrorIs(t, err, ErrUnsortedQuery)
	})

	t.Run("page past the end is empty but keeps metadata", func(t *testing.T) {
		testDB := setupPaginationTest(t, 2)

		page, err := Paginate[model.Market](testDB.Model(&model.Market{}), PageFilter{
			PageNumber: 9,
			PageSize:   10,
			SortBy:     "name",
		})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Equal(t, int64(2), page.TotalCount)
		assert.Equal(t, 1, page.TotalPages)
	})
}
