package database

import (
	"log"

	"gestimmo-backend/internal/config"
	"gestimmo-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Connexion à la base impossible: %v", err)
	}

	// Migration manuelle Payment.reference (AVANT AutoMigrate) :
	// les anciens encaissements saisis sans référence reçoivent un code
	// dérivé de leur id, sinon l'index unique de la nouvelle colonne casse.
	if DB.Migrator().HasTable(&models.Payment{}) {
		if !DB.Migrator().HasColumn(&models.Payment{}, "reference") {
			log.Println("Ajout de la colonne payments.reference...")
			if err := DB.Exec("ALTER TABLE payments ADD COLUMN reference VARCHAR(30)").Error; err != nil {
				log.Printf("Erreur à l'ajout de reference (peut déjà exister): %v", err)
			}
			DB.Exec("UPDATE payments SET reference = 'LOY-0000-' || LPAD(id::text, 6, '0') WHERE reference IS NULL")
			if err := DB.Exec("ALTER TABLE payments ALTER COLUMN reference SET NOT NULL").Error; err != nil {
				log.Printf("Erreur au passage de reference en NOT NULL: %v", err)
			}
			log.Println("Migration payments.reference terminée")
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Landlord{},
		&models.Building{},
		&models.Unit{},
		&models.Tenant{},
		&models.Contract{},
		&models.Payment{},
		&models.ExpenseCategory{},
		&models.Expense{},
		&models.Revenue{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erreur AutoMigrate: %v", err)
	}

	log.Println("Connexion base OK. Migration terminée.")
}
