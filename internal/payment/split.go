package payment

import (
	"fmt"
	"time"
)

// SplitRent: répartition d'un loyer encaissé entre honoraires d'agence et
// part bailleur, au taux de commission du bailleur (en %).
// La part bailleur est calculée par différence pour que
// agency + owner == total soit exact, y compris en flottant.
func SplitRent(total, commissionRate float64) (agencyShare, ownerShare float64) {
	agencyShare = total * commissionRate / 100
	ownerShare = total - agencyShare
	return agencyShare, ownerShare
}

// GenPaymentRef: référence lisible d'un encaissement, ex: LOY-2025-000042
func GenPaymentRef(seq int64, t time.Time) string {
	return fmt.Sprintf("LOY-%d-%06d", t.Year(), seq)
}
