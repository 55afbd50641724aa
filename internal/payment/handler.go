package payment

import (
	"fmt"
	"time"

	"gestimmo-backend/internal/audit"
	"gestimmo-backend/internal/auth"
	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	ContractID  uint                 `json:"contract_id"`
	TotalAmount float64              `json:"total_amount"`
	PeriodMonth string               `json:"period_month"` // "2025-03" ou "2025-03-01"
	PaymentDate string               `json:"payment_date"` // "2025-03-05"
	Status      models.PaymentStatus `json:"status"`
}

type UpdatePaymentStatusRequest struct {
	Status models.PaymentStatus `json:"status"`
}

type PaymentResponse struct {
	ID          uint                 `json:"id"`
	Reference   string               `json:"reference"`
	ContractID  uint                 `json:"contract_id"`
	TenantName  string               `json:"tenant_name"`
	UnitName    string               `json:"unit_name"`
	TotalAmount float64              `json:"total_amount"`
	AgencyShare float64              `json:"agency_share"`
	OwnerShare  float64              `json:"owner_share"`
	PeriodMonth string               `json:"period_month"`
	PaymentDate string               `json:"payment_date"`
	Status      models.PaymentStatus `json:"status"`
}

func toResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		Reference:   p.Reference,
		ContractID:  p.ContractID,
		TenantName:  p.Contract.Tenant.Name,
		UnitName:    p.Contract.Unit.Name,
		TotalAmount: p.TotalAmount,
		AgencyShare: p.AgencyShare,
		OwnerShare:  p.OwnerShare,
		PeriodMonth: p.PeriodMonth.Format("2006-01"),
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		Status:      p.Status,
	}
}

func validStatus(s models.PaymentStatus) bool {
	switch s {
	case models.PaymentStatusPaid, models.PaymentStatusUnpaid, models.PaymentStatusPartial:
		return true
	}
	return false
}

// parsePeriodMonth accepte "2025-03" et "2025-03-01", et ramène toujours
// au premier jour du mois.
func parsePeriodMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// POST /api/payments
// La répartition agence/bailleur est figée ici, au taux courant du
// bailleur. Elle n'est jamais recalculée côté rapports.
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.ContractID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "contract_id obligatoire")
		}
		if body.TotalAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Montant invalide")
		}
		if !validStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (paid/unpaid/partial)")
		}

		period, err := parsePeriodMonth(body.PeriodMonth)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "period_month invalide (AAAA-MM)")
		}
		payDate, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "payment_date invalide (AAAA-MM-JJ)")
		}

		var ct models.Contract
		if err := database.DB.Preload("Tenant").Preload("Unit").First(&ct, "id = ?", body.ContractID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bail introuvable")
		}

		// Remonter la filiation lot → immeuble → bailleur pour le taux
		var b models.Building
		if err := database.DB.First(&b, "id = ?", ct.Unit.BuildingID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Immeuble du lot introuvable")
		}
		var l models.Landlord
		if err := database.DB.First(&l, "id = ?", b.LandlordID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bailleur de l'immeuble introuvable")
		}

		agency, owner := SplitRent(body.TotalAmount, l.CommissionRate)

		p := models.Payment{
			ContractID:  body.ContractID,
			TotalAmount: body.TotalAmount,
			AgencyShare: agency,
			OwnerShare:  owner,
			PeriodMonth: period,
			PaymentDate: payDate,
			Status:      body.Status,
		}

		// Séquence sur MAX(id), jamais sur un comptage : après une
		// suppression (undo d'audit), un comptage retombe sur un numéro
		// déjà attribué et l'index unique rejette la création.
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var seq int64
			if err := tx.Raw("SELECT COALESCE(MAX(id),0)+1 FROM payments").Scan(&seq).Error; err != nil {
				return err
			}
			p.Reference = GenPaymentRef(seq, payDate)
			return tx.Create(&p).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement de l'encaissement impossible")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "payment",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Encaissement %s (%s)", p.Reference, p.PeriodMonth.Format("2006-01")),
			After:       p,
		})

		p.Contract = ct
		return c.Status(fiber.StatusCreated).JSON(toResponse(&p))
	}
}

// GET /api/payments?year=2025&month=3&contract_id=1&status=unpaid
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Payment{}).
			Preload("Contract").Preload("Contract.Tenant").Preload("Contract.Unit")

		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr != "" && monthStr != "" {
			var year, month int
			if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year invalide")
			}
			if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
				return fiber.NewError(fiber.StatusBadRequest, "month invalide")
			}
			monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			monthEnd := monthStart.AddDate(0, 1, 0)
			dbq = dbq.Where("period_month >= ? AND period_month < ?", monthStart, monthEnd)
		}

		if v := c.Query("contract_id"); v != "" {
			var id uint
			if _, err := fmt.Sscan(v, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "contract_id invalide")
			}
			dbq = dbq.Where("contract_id = ?", id)
		}
		if v := c.Query("status"); v != "" {
			if !validStatus(models.PaymentStatus(v)) {
				return fiber.NewError(fiber.StatusBadRequest, "status invalide")
			}
			dbq = dbq.Where("status = ?", v)
		}

		var payments []models.Payment
		if err := dbq.Order("period_month DESC, id DESC").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des encaissements impossible")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for i := range payments {
			resp = append(resp, toResponse(&payments[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/payments/:id/status
// Correction de statut uniquement : montants et répartition sont figés
// depuis la saisie.
func UpdatePaymentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID invalide")
		}

		var p models.Payment
		if err := database.DB.Preload("Contract").Preload("Contract.Tenant").Preload("Contract.Unit").
			First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Encaissement introuvable")
		}

		var body UpdatePaymentStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if !validStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (paid/unpaid/partial)")
		}

		before := p
		p.Status = body.Status
		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du statut impossible")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "payment",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Statut %s : %s → %s", p.Reference, before.Status, p.Status),
			Before:      before,
			After:       p,
		})

		return c.JSON(toResponse(&p))
	}
}

func currentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return userID, ""
	}
	return userID, user.Name
}
