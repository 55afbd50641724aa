package report

import (
	"fmt"
	"log"
	"time"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// Les lectures sans dépendance entre elles partent en parallèle ; toute
// erreur abandonne la vue avec un message générique, sans retry.

func parseYearMonth(c *fiber.Ctx) (int, int, error) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year et month obligatoires")
	}

	var year, month int
	if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year invalide")
	}
	if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month invalide")
	}
	return year, month, nil
}

func loadFailed(err error) error {
	log.Printf("Lecture des données en erreur: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Impossible de charger les données")
}

// GET /api/reports/monthly?year=2025&month=3
func MonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := parseYearMonth(c)
		if err != nil {
			return err
		}
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var payments []models.Payment
		var expenses []models.Expense

		var g errgroup.Group
		g.Go(func() error {
			return database.DB.Where("period_month >= ? AND period_month < ?", monthStart, monthEnd).
				Find(&payments).Error
		})
		g.Go(func() error {
			return database.DB.Where("date >= ? AND date < ?", monthStart, monthEnd).
				Find(&expenses).Error
		})
		if err := g.Wait(); err != nil {
			return loadFailed(err)
		}

		return c.JSON(AggregateMonthly(payments, expenses, monthStart))
	}
}

// GET /api/reports/buildings?year=2025&month=3
func BuildingReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := parseYearMonth(c)
		if err != nil {
			return err
		}
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)

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

		return c.JSON(AggregateByBuilding(payments, buildings, units, contracts, monthStart))
	}
}

// GET /api/reports/landlords?year=2025&month=3[&landlord_id=1]
func LandlordStatementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := parseYearMonth(c)
		if err != nil {
			return err
		}
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var landlordID uint
		if v := c.Query("landlord_id"); v != "" {
			if _, err := fmt.Sscan(v, &landlordID); err != nil || landlordID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "landlord_id invalide")
			}
		}

		var payments []models.Payment
		var buildings []models.Building
		var landlords []models.Landlord
		var units []models.Unit
		var contracts []models.Contract

		var g errgroup.Group
		g.Go(func() error {
			return database.DB.Where("period_month >= ? AND period_month < ?", monthStart, monthEnd).
				Find(&payments).Error
		})
		g.Go(func() error { return database.DB.Find(&buildings).Error })
		g.Go(func() error {
			dbq := database.DB
			if landlordID != 0 {
				dbq = dbq.Where("id = ?", landlordID)
			}
			return dbq.Find(&landlords).Error
		})
		g.Go(func() error { return database.DB.Find(&units).Error })
		g.Go(func() error { return database.DB.Find(&contracts).Error })
		if err := g.Wait(); err != nil {
			return loadFailed(err)
		}

		if landlordID != 0 && len(landlords) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Bailleur introuvable")
		}

		return c.JSON(AggregateByLandlord(payments, buildings, landlords, units, contracts, monthStart))
	}
}

// GET /api/reports/annual?year=2025
func AnnualReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearStr := c.Query("year")
		if yearStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year obligatoire")
		}
		var year int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year invalide")
		}

		yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := yearStart.AddDate(1, 0, 0)

		var payments []models.Payment
		var expenses []models.Expense

		var g errgroup.Group
		g.Go(func() error {
			return database.DB.Where("period_month >= ? AND period_month < ?", yearStart, yearEnd).
				Find(&payments).Error
		})
		g.Go(func() error {
			return database.DB.Where("date >= ? AND date < ?", yearStart, yearEnd).
				Find(&expenses).Error
		})
		if err := g.Wait(); err != nil {
			return loadFailed(err)
		}

		return c.JSON(AggregateAnnualSeries(payments, expenses, year))
	}
}
