package document

import (
	"fmt"
	"log"
	"time"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

func downloadName(context string, id uint) string {
	return fmt.Sprintf("%s-%d-%s.pdf", context, id, time.Now().Format("20060102-150405"))
}

// GET /api/documents/contracts/:id
// Contrat de location. Un modèle illisible interrompt la génération.
func ContractDocumentHandler(templateDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var contractID uint
		if _, err := fmt.Sscan(c.Params("id"), &contractID); err != nil || contractID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID invalide")
		}

		var contract models.Contract
		if err := database.DB.Preload("Tenant").Preload("Unit.Building.Landlord").
			First(&contract, "id = ?", contractID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bail introuvable")
		}

		tpl, err := LoadTemplate(templateDir, "contrat.txt")
		if err != nil {
			log.Printf("Modèle de contrat illisible: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Modèle de contrat illisible")
		}

		building := contract.Unit.Building
		values := map[string]string{
			"locataire":    contract.Tenant.Name,
			"bailleur":     building.Landlord.Name,
			"immeuble":     building.Name,
			"adresse":      building.Address,
			"lot":          contract.Unit.Name,
			"loyer":        formatMoney(contract.RentAmount),
			"depot":        formatMoney(contract.Deposit),
			"date_debut":   formatDate(contract.StartDate),
			"date_fin":     formatDate(contract.EndDate),
			"duree_annees": leaseDurationYears(contract.StartDate, contract.EndDate),
			"date_jour":    formatDate(time.Now()),
		}

		body, dynamics := FillTemplate(tpl, values)
		data, err := renderPDF("Contrat de location", body, dynamics, nil, "")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du document impossible")
		}
		return sendPDF(c, downloadName("contrat", contract.ID), data)
	}
}

// GET /api/documents/mandates/:id
// Mandat de gestion. Seule variante à dégrader : si le modèle est
// illisible, un document minimal au seul nom du bailleur est rendu au lieu
// d'interrompre.
func MandateDocumentHandler(templateDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var landlordID uint
		if _, err := fmt.Sscan(c.Params("id"), &landlordID); err != nil || landlordID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID invalide")
		}

		var landlord models.Landlord
		if err := database.DB.First(&landlord, "id = ?", landlordID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bailleur introuvable")
		}

		tpl, err := LoadTemplate(templateDir, "mandat.txt")
		if err != nil {
			log.Printf("Modèle de mandat illisible, rendu dégradé: %v", err)
			data, err := renderPDF("Mandat de gestion", landlord.Name, nil, nil, "")
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Génération du document impossible")
			}
			return sendPDF(c, downloadName("mandat", landlord.ID), data)
		}

		values := map[string]string{
			"bailleur":   landlord.Name,
			"email":      landlord.Email,
			"telephone":  landlord.Phone,
			"commission": fmt.Sprintf("%g", landlord.CommissionRate),
			"date_jour":  formatDate(time.Now()),
		}

		body, dynamics := FillTemplate(tpl, values)
		data, err := renderPDF("Mandat de gestion", body, dynamics, nil, "")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du document impossible")
		}
		return sendPDF(c, downloadName("mandat", landlord.ID), data)
	}
}

// Mentions fixes au bas de chaque quittance.
const receiptMentions = "La présente quittance ne libère le locataire que pour la période " +
	"indiquée. Elle est délivrée sous réserve de l'encaissement effectif des sommes. " +
	"Elle ne vaut pas renonciation aux loyers antérieurs restés impayés."

// GET /api/documents/receipts/:id
// Quittance de loyer : corps replié, puis tableau récapitulatif et bloc
// Mentions. Réservée aux encaissements soldés.
func ReceiptDocumentHandler(templateDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var paymentID uint
		if _, err := fmt.Sscan(c.Params("id"), &paymentID); err != nil || paymentID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID invalide")
		}

		var payment models.Payment
		if err := database.DB.Preload("Contract.Tenant").Preload("Contract.Unit.Building.Landlord").
			First(&payment, "id = ?", paymentID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Encaissement introuvable")
		}
		if payment.Status != models.PaymentStatusPaid {
			return fiber.NewError(fiber.StatusConflict, "Quittance impossible : loyer non soldé")
		}

		tpl, err := LoadTemplate(templateDir, "quittance.txt")
		if err != nil {
			log.Printf("Modèle de quittance illisible: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Modèle de quittance illisible")
		}

		contract := payment.Contract
		building := contract.Unit.Building
		values := map[string]string{
			"reference":     payment.Reference,
			"locataire":     contract.Tenant.Name,
			"bailleur":      building.Landlord.Name,
			"immeuble":      building.Name,
			"adresse":       building.Address,
			"lot":           contract.Unit.Name,
			"periode":       formatMonthFR(payment.PeriodMonth),
			"montant":       formatMoney(payment.TotalAmount),
			"date_paiement": formatDate(payment.PaymentDate),
			"date_jour":     formatDate(time.Now()),
		}

		body, dynamics := FillTemplate(tpl, values)
		table := []tableRow{
			{Key: "Référence", Value: payment.Reference},
			{Key: "Période", Value: formatMonthFR(payment.PeriodMonth)},
			{Key: "Loyer encaissé", Value: formatMoney(payment.TotalAmount)},
			{Key: "Honoraires de gestion", Value: formatMoney(payment.AgencyShare)},
			{Key: "Part bailleur", Value: formatMoney(payment.OwnerShare)},
			{Key: "Date de paiement", Value: formatDate(payment.PaymentDate)},
		}

		data, err := renderPDF("Quittance de loyer", body, dynamics, table, receiptMentions)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du document impossible")
		}
		return sendPDF(c, downloadName("quittance", payment.ID), data)
	}
}
