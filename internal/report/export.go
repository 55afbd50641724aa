package report

import (
	"fmt"
	"time"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// GET /api/reports/landlords/:id/export?year=2025&month=3
// Relevé de gérance du bailleur au format XLSX.
func ExportLandlordStatementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var landlordID uint
		if _, err := fmt.Sscan(c.Params("id"), &landlordID); err != nil || landlordID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID invalide")
		}

		year, month, err := parseYearMonth(c)
		if err != nil {
			return err
		}
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var landlord models.Landlord
		if err := database.DB.First(&landlord, "id = ?", landlordID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bailleur introuvable")
		}

		var payments []models.Payment
		var buildings []models.Building
		var units []models.Unit
		var contracts []models.Contract

		var g errgroup.Group
		g.Go(func() error {
			return database.DB.Where("period_month >= ? AND period_month < ?", monthStart, monthEnd).
				Find(&payments).Error
		})
		g.Go(func() error { return database.DB.Find(&buildings).Error })
		g.Go(func() error { return database.DB.Find(&units).Error })
		g.Go(func() error { return database.DB.Find(&contracts).Error })
		if err := g.Wait(); err != nil {
			return loadFailed(err)
		}

		statements := AggregateByLandlord(payments, buildings, []models.Landlord{landlord}, units, contracts, monthStart)
		if len(statements) == 0 {
			return fiber.NewError(fiber.StatusConflict, "Ce bailleur est inactif")
		}
		st := statements[0]

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Relevé"
		f.SetSheetName("Sheet1", sheet)
		f.SetColWidth(sheet, "A", "A", 30)
		f.SetColWidth(sheet, "B", "E", 16)

		f.SetCellValue(sheet, "A1", "Relevé de gérance")
		f.SetCellValue(sheet, "A2", "Bailleur")
		f.SetCellValue(sheet, "B2", st.LandlordName)
		f.SetCellValue(sheet, "A3", "Période")
		f.SetCellValue(sheet, "B3", monthStart.Format("2006-01"))
		f.SetCellValue(sheet, "A4", "Taux de commission (%)")
		f.SetCellValue(sheet, "B4", st.CommissionRate)

		f.SetCellValue(sheet, "A6", "Immeuble")
		f.SetCellValue(sheet, "B6", "Loyers encaissés")
		f.SetCellValue(sheet, "C6", "Impayés")
		f.SetCellValue(sheet, "D6", "Honoraires")
		f.SetCellValue(sheet, "E6", "Net à reverser")

		row := 7
		for _, b := range st.Buildings {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.BuildingName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.RentCollected)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.RentUnpaid)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), b.ManagementFees)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), b.NetPayout)
			row++
		}

		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "TOTAL")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), st.RentCollected)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), st.RentUnpaid)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), st.ManagementFees)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), st.NetPayout)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du fichier impossible")
		}

		filename := fmt.Sprintf("releve-%d-%s.xlsx", st.LandlordID, monthStart.Format("2006-01"))
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}
