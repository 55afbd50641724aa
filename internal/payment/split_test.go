package payment

import (
	"testing"
	"time"
)

func TestSplitRent(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		rate       float64
		wantAgency float64
	}{
		{"taux 10%", 100000, 10, 10000},
		{"taux 8%", 150000, 8, 12000},
		{"taux 0%", 50000, 0, 0},
		{"taux 100%", 50000, 100, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agency, owner := SplitRent(tt.total, tt.rate)
			if agency != tt.wantAgency {
				t.Errorf("agency = %v, attendu %v", agency, tt.wantAgency)
			}
			if agency+owner != tt.total {
				t.Errorf("agency+owner = %v, attendu %v", agency+owner, tt.total)
			}
		})
	}
}

// La somme des parts doit valoir exactement le total, même avec des taux
// qui ne tombent pas juste en binaire.
func TestSplitRentExactSum(t *testing.T) {
	totals := []float64{100000, 33333.33, 0.01, 74999.99}
	rates := []float64{7.5, 10.1, 3.33, 12}

	for _, total := range totals {
		for _, rate := range rates {
			agency, owner := SplitRent(total, rate)
			if agency+owner != total {
				t.Errorf("SplitRent(%v, %v): agency+owner = %v, attendu %v",
					total, rate, agency+owner, total)
			}
		}
	}
}

func TestGenPaymentRef(t *testing.T) {
	ref := GenPaymentRef(42, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if ref != "LOY-2025-000042" {
		t.Errorf("ref = %q, attendu %q", ref, "LOY-2025-000042")
	}
}

// La séquence repart de MAX(id)+1, pas du nombre de lignes vivantes.
// Scénario : encaissements 1 à 3 créés, le n°2 supprimé (undo d'audit).
// Un comptage donnerait 2+1=3 et retomberait sur la référence du n°3 ;
// MAX(id)+1 donne 4 et ne recroise aucune référence existante.
func TestGenPaymentRefSequenceAfterDeletion(t *testing.T) {
	at := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	// références vivantes après suppression du n°2
	liveIDs := []int64{1, 3}
	existing := make(map[string]bool, len(liveIDs))
	var maxID int64
	for _, id := range liveIDs {
		existing[GenPaymentRef(id, at)] = true
		if id > maxID {
			maxID = id
		}
	}

	countBased := GenPaymentRef(int64(len(liveIDs))+1, at)
	if !existing[countBased] {
		t.Fatalf("la fixture devrait faire collisionner la séquence par comptage (%s)", countBased)
	}

	next := GenPaymentRef(maxID+1, at)
	if existing[next] {
		t.Errorf("référence %s déjà attribuée", next)
	}
}
