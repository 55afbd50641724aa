package dashboard

import (
	"fmt"
	"log"
	"time"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"
	"gestimmo-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

type RentChartPoint struct {
	Label          string  `json:"label"` // "2025-03"
	RentCollected  float64 `json:"rent_collected"`
	RentUnpaid     float64 `json:"rent_unpaid"`
	ManagementFees float64 `json:"management_fees"`
	Expenses       float64 `json:"expenses"`
}

type RentChartGrandTotals struct {
	RentCollected  float64 `json:"rent_collected"`
	RentUnpaid     float64 `json:"rent_unpaid"`
	ManagementFees float64 `json:"management_fees"`
	Expenses       float64 `json:"expenses"`
}

type RentChartResponse struct {
	Year        int                  `json:"year"`
	Points      []RentChartPoint     `json:"points"`
	GrandTotals RentChartGrandTotals `json:"grand_totals"`
}

// GET /api/dashboard/annual-chart?year=2025
// Courbe annuelle pour le tableau de bord : un point par mois, janvier à
// décembre, plus les cumuls de l'année.
func RentChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := time.Now().Year()
		if v := c.Query("year"); v != "" {
			if _, err := fmt.Sscan(v, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year invalide")
			}
		}

		yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := yearStart.AddDate(1, 0, 0)

		var payments []models.Payment
		if err := database.DB.Where("period_month >= ? AND period_month < ?", yearStart, yearEnd).
			Find(&payments).Error; err != nil {
			log.Printf("Lecture des encaissements en erreur: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Impossible de charger les données")
		}
		var expenses []models.Expense
		if err := database.DB.Where("date >= ? AND date < ?", yearStart, yearEnd).
			Find(&expenses).Error; err != nil {
			log.Printf("Lecture des charges en erreur: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Impossible de charger les données")
		}

		series := report.AggregateAnnualSeries(payments, expenses, year)

		points := make([]RentChartPoint, 0, len(series))
		grand := RentChartGrandTotals{}
		for _, agg := range series {
			points = append(points, RentChartPoint{
				Label:          agg.Month,
				RentCollected:  agg.RentCollected,
				RentUnpaid:     agg.RentUnpaid,
				ManagementFees: agg.ManagementFees,
				Expenses:       agg.Expenses,
			})
			grand.RentCollected += agg.RentCollected
			grand.RentUnpaid += agg.RentUnpaid
			grand.ManagementFees += agg.ManagementFees
			grand.Expenses += agg.Expenses
		}

		return c.JSON(RentChartResponse{
			Year:        year,
			Points:      points,
			GrandTotals: grand,
		})
	}
}

type OverviewResponse struct {
	Landlords       int64   `json:"landlords"`
	Buildings       int64   `json:"buildings"`
	Units           int64   `json:"units"`
	OccupiedUnits   int64   `json:"occupied_units"`
	Tenants         int64   `json:"tenants"`
	ActiveContracts int64   `json:"active_contracts"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// GET /api/dashboard/overview
// Compteurs du parc pour les cartes d'entête.
func OverviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp OverviewResponse

		counts := []func() error{
			func() error {
				return database.DB.Model(&models.Landlord{}).Where("active = ?", true).Count(&resp.Landlords).Error
			},
			func() error {
				return database.DB.Model(&models.Building{}).Where("active = ?", true).Count(&resp.Buildings).Error
			},
			func() error {
				return database.DB.Model(&models.Unit{}).Count(&resp.Units).Error
			},
			func() error {
				return database.DB.Model(&models.Unit{}).Where("status = ?", models.UnitStatusOccupied).Count(&resp.OccupiedUnits).Error
			},
			func() error {
				return database.DB.Model(&models.Tenant{}).Count(&resp.Tenants).Error
			},
			func() error {
				return database.DB.Model(&models.Contract{}).Where("active = ?", true).Count(&resp.ActiveContracts).Error
			},
		}
		for _, count := range counts {
			if err := count(); err != nil {
				log.Printf("Comptage en erreur: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Impossible de charger les données")
			}
		}

		if resp.Units > 0 {
			resp.OccupancyRate = float64(resp.OccupiedUnits) / float64(resp.Units)
		}
		return c.JSON(resp)
	}
}
