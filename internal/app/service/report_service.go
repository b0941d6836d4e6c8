package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportService interface {
	ExportLevyReport(marketID string, from, to time.Time) ([]byte, string, error)
}

type reportService struct {
	marketRepo repository.MarketRepository
	levyRepo   repository.LevyRepository
}

func NewReportService(marketRepo repository.MarketRepository, levyRepo repository.LevyRepository) ReportService {
	return &reportService{marketRepo: marketRepo, levyRepo: levyRepo}
}

// ExportLevyReport renders the market's paid levies within [from, to)
// as an XLSX workbook. Returns the file bytes and a suggested filename.
func (s *reportService) ExportLevyReport(marketID string, from, to time.Time) ([]byte, string, error) {
	market, err := s.marketRepo.FindByID(marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrMarketNotFound
		}
		return nil, "", err
	}

	payments, err := s.levyRepo.ListPaidBetween(marketID, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Levy Payments"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Payment Date", "Payer", "Amount", "Period", "Method", "Reference", "Collector"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var total float64
	for i := range payments {
		p := &payments[i]
		row := i + 2
		payer := ResolvePayerName(p)
		values := []interface{}{
			p.PaymentDate.Format("2006-01-02 15:04"),
			payer.Name,
			p.Amount,
			string(p.Period),
			string(p.PaymentMethod),
			p.TransactionReference,
			p.GoodBoy.User.FullName,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		total += p.Amount
	}

	totalRow := len(payments) + 3
	labelCell, _ := excelize.CoordinatesToCellName(2, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	f.SetCellValue(sheet, labelCell, "Total")
	f.SetCellValue(sheet, valueCell, total)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to render levy report workbook", err, map[string]interface{}{
			"market_id": marketID,
		})
		return nil, "", err
	}

	filename := fmt.Sprintf("levy-report-%s-%s.xlsx", sanitizeFilename(market.Name), from.Format("20060102"))
	logger.Info("Levy report exported", map[string]interface{}{
		"market_id": marketID,
		"payments":  len(payments),
		"total":     total,
	})
	return buf.Bytes(), filename, nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}
