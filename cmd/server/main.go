package main

import (
	"log"
	"strings"

	"gestimmo-backend/internal/audit"
	"gestimmo-backend/internal/auth"
	"gestimmo-backend/internal/building"
	"gestimmo-backend/internal/config"
	"gestimmo-backend/internal/dashboard"
	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/document"
	"gestimmo-backend/internal/expense"
	"gestimmo-backend/internal/landlord"
	"gestimmo-backend/internal/models"
	"gestimmo-backend/internal/payment"
	"gestimmo-backend/internal/report"
	"gestimmo-backend/internal/revenue"
	"gestimmo-backend/internal/tenant"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erreur inattendue:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erreur serveur inattendue",
			})
		},
	})

	// CORS : origines en liste séparée par des virgules
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth public
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Routes authentifiées
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Routes admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Utilisateurs
	adminRoutes.Post("/users", auth.CreateUserHandler())

	// Bailleurs
	adminRoutes.Post("/landlords", landlord.CreateLandlordHandler())
	adminRoutes.Put("/landlords/:id", landlord.UpdateLandlordHandler())
	adminRoutes.Delete("/landlords/:id", landlord.DeleteLandlordHandler())

	// Immeubles et lots
	adminRoutes.Post("/buildings", building.CreateBuildingHandler())
	adminRoutes.Put("/buildings/:id", building.UpdateBuildingHandler())
	adminRoutes.Delete("/buildings/:id", building.DeleteBuildingHandler())
	adminRoutes.Post("/buildings/:id/units", building.CreateUnitHandler())
	adminRoutes.Put("/units/:id", building.UpdateUnitHandler())
	adminRoutes.Delete("/units/:id", building.DeleteUnitHandler())

	// Catégories de charges
	adminRoutes.Post("/expense-categories", expense.CreateExpenseCategoryHandler())
	adminRoutes.Put("/expense-categories/:id", expense.UpdateExpenseCategoryHandler())
	adminRoutes.Delete("/expense-categories/:id", expense.DeleteExpenseCategoryHandler())

	// Routes partagées (admin + gestionnaire)

	// Parc
	protected.Get("/landlords", landlord.ListLandlordsHandler())
	protected.Get("/landlords/:id", landlord.GetLandlordHandler())
	protected.Get("/buildings", building.ListBuildingsHandler())
	protected.Get("/buildings/:id", building.GetBuildingHandler())
	protected.Get("/buildings/:id/units", building.ListUnitsHandler())

	// Locataires
	protected.Post("/tenants", tenant.CreateTenantHandler())
	protected.Get("/tenants", tenant.ListTenantsHandler())
	protected.Get("/tenants/:id", tenant.GetTenantHandler())
	protected.Put("/tenants/:id", tenant.UpdateTenantHandler())
	protected.Delete("/tenants/:id", tenant.DeleteTenantHandler())

	// Baux
	protected.Post("/contracts", tenant.CreateContractHandler())
	protected.Get("/contracts", tenant.ListContractsHandler())
	protected.Post("/contracts/:id/terminate", tenant.TerminateContractHandler())

	// Encaissements de loyers
	protected.Post("/payments", payment.CreatePaymentHandler())
	protected.Get("/payments", payment.ListPaymentsHandler())
	protected.Put("/payments/:id/status", payment.UpdatePaymentStatusHandler())

	// Charges
	protected.Get("/expense-categories", expense.ListExpenseCategoriesHandler())
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Get("/expenses/summary/monthly", expense.MonthlyExpenseSummaryHandler())

	// Produits divers
	protected.Post("/revenues", revenue.CreateRevenueHandler())
	protected.Get("/revenues", revenue.ListRevenuesHandler())

	// Rapports financiers
	protected.Get("/reports/monthly", report.MonthlyReportHandler())
	protected.Get("/reports/buildings", report.BuildingReportHandler())
	protected.Get("/reports/landlords", report.LandlordStatementHandler())
	protected.Get("/reports/landlords/:id/export", report.ExportLandlordStatementHandler())
	protected.Get("/reports/annual", report.AnnualReportHandler())

	// Tableau de bord
	protected.Get("/dashboard/overview", dashboard.OverviewHandler())
	protected.Get("/dashboard/annual-chart", dashboard.RentChartHandler())

	// Documents PDF
	protected.Get("/documents/contracts/:id", document.ContractDocumentHandler(cfg.TemplateDir))
	protected.Get("/documents/mandates/:id", document.MandateDocumentHandler(cfg.TemplateDir))
	protected.Get("/documents/receipts/:id", document.ReceiptDocumentHandler(cfg.TemplateDir))

	// Journal d'audit
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Serveur démarré port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
