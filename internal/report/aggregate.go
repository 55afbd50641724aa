package report

import (
	"time"

	"gestimmo-backend/internal/models"
)

// Les agrégats sont recalculés à chaque vue par réduction des lignes déjà
// chargées. Aucune requête ici : les handlers chargent, le moteur réduit.

type MonthlyAggregate struct {
	Month          string  `json:"month"` // "2025-03"
	RentCollected  float64 `json:"rent_collected"`
	RentUnpaid     float64 `json:"rent_unpaid"`
	ManagementFees float64 `json:"management_fees"`
	Expenses       float64 `json:"expenses"`
	NetBalance     float64 `json:"net_balance"` // honoraires - charges
}

type BuildingReport struct {
	BuildingID     uint    `json:"building_id"`
	BuildingName   string  `json:"building_name"`
	LandlordID     uint    `json:"landlord_id"`
	RentCollected  float64 `json:"rent_collected"`
	RentUnpaid     float64 `json:"rent_unpaid"`
	ManagementFees float64 `json:"management_fees"`
	NetPayout      float64 `json:"net_payout"` // encaissé - honoraires
	OccupiedUnits  int     `json:"occupied_units"`
	TotalUnits     int     `json:"total_units"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

type BuildingBreakdown struct {
	BuildingID     uint    `json:"building_id"`
	BuildingName   string  `json:"building_name"`
	RentCollected  float64 `json:"rent_collected"`
	RentUnpaid     float64 `json:"rent_unpaid"`
	ManagementFees float64 `json:"management_fees"`
	NetPayout      float64 `json:"net_payout"`
}

type LandlordStatement struct {
	LandlordID     uint                `json:"landlord_id"`
	LandlordName   string              `json:"landlord_name"`
	CommissionRate float64             `json:"commission_rate"`
	RentCollected  float64             `json:"rent_collected"`
	RentUnpaid     float64             `json:"rent_unpaid"`
	ManagementFees float64             `json:"management_fees"`
	NetPayout      float64             `json:"net_payout"`
	Buildings      []BuildingBreakdown `json:"buildings"`
}

// monthWindow: fenêtre semi-ouverte [début du mois, début du mois suivant).
// Toujours AddDate(0, 1, 0) : jamais d'arithmétique en jours, les mois
// n'ont pas tous la même longueur.
func monthWindow(month time.Time) (time.Time, time.Time) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// AggregateMonthly: totaux du portefeuille pour un mois.
// Aucune résolution de filiation ici : un encaissement orphelin (bail ou
// immeuble supprimé) compte quand même dans les totaux du mois, alors que
// les ventilations par immeuble/bailleur l'ignorent.
func AggregateMonthly(payments []models.Payment, expenses []models.Expense, month time.Time) MonthlyAggregate {
	start, end := monthWindow(month)

	agg := MonthlyAggregate{Month: start.Format("2006-01")}

	for _, p := range payments {
		if !inWindow(p.PeriodMonth, start, end) {
			continue
		}
		switch p.Status {
		case models.PaymentStatusPaid:
			agg.RentCollected += p.TotalAmount
			agg.ManagementFees += p.AgencyShare
		case models.PaymentStatusUnpaid:
			agg.RentUnpaid += p.TotalAmount
		}
		// partial : ni encaissé ni impayé
	}

	for _, e := range expenses {
		if !inWindow(e.Date, start, end) {
			continue
		}
		agg.Expenses += e.Amount
	}

	agg.NetBalance = agg.ManagementFees - agg.Expenses
	return agg
}

// lineage: index bail → lot → immeuble construit une fois par appel
type lineage struct {
	contractUnit map[uint]uint
	unitBuilding map[uint]uint
}

func buildLineage(units []models.Unit, contracts []models.Contract) lineage {
	idx := lineage{
		contractUnit: make(map[uint]uint, len(contracts)),
		unitBuilding: make(map[uint]uint, len(units)),
	}
	for _, ct := range contracts {
		idx.contractUnit[ct.ID] = ct.UnitID
	}
	for _, u := range units {
		idx.unitBuilding[u.ID] = u.BuildingID
	}
	return idx
}

// buildingOf remonte la filiation d'un encaissement. false = filiation
// cassée (bail, lot ou immeuble manquant).
func (l lineage) buildingOf(p models.Payment) (uint, bool) {
	unitID, ok := l.contractUnit[p.ContractID]
	if !ok {
		return 0, false
	}
	buildingID, ok := l.unitBuilding[unitID]
	if !ok {
		return 0, false
	}
	return buildingID, true
}

// AggregateByBuilding: un rapport par immeuble actif.
// L'occupation est un instantané du statut courant des lots, indépendante
// de la fenêtre du mois.
func AggregateByBuilding(payments []models.Payment, buildings []models.Building, units []models.Unit, contracts []models.Contract, month time.Time) []BuildingReport {
	start, end := monthWindow(month)
	idx := buildLineage(units, contracts)

	reports := make([]BuildingReport, 0, len(buildings))
	byBuilding := make(map[uint]*BuildingReport, len(buildings))

	for _, b := range buildings {
		if !b.Active {
			continue
		}
		reports = append(reports, BuildingReport{
			BuildingID:   b.ID,
			BuildingName: b.Name,
			LandlordID:   b.LandlordID,
		})
		byBuilding[b.ID] = &reports[len(reports)-1]
	}

	for _, u := range units {
		r, ok := byBuilding[u.BuildingID]
		if !ok {
			continue
		}
		r.TotalUnits++
		if u.Status == models.UnitStatusOccupied {
			r.OccupiedUnits++
		}
	}

	for _, p := range payments {
		if !inWindow(p.PeriodMonth, start, end) {
			continue
		}
		buildingID, ok := idx.buildingOf(p)
		if !ok {
			continue // filiation cassée : exclu des ventilations
		}
		r, ok := byBuilding[buildingID]
		if !ok {
			continue
		}
		switch p.Status {
		case models.PaymentStatusPaid:
			r.RentCollected += p.TotalAmount
			r.ManagementFees += p.AgencyShare
		case models.PaymentStatusUnpaid:
			r.RentUnpaid += p.TotalAmount
		}
	}

	for i := range reports {
		r := &reports[i]
		r.NetPayout = r.RentCollected - r.ManagementFees
		if r.TotalUnits > 0 {
			r.OccupancyRate = float64(r.OccupiedUnits) / float64(r.TotalUnits)
		}
	}

	return reports
}

// AggregateByLandlord: un relevé par bailleur actif, avec ventilation
// par immeuble. La ligne d'un immeuble est créée au premier encaissement
// rencontré, puis cumulée, jamais dupliquée.
// L'impayé ne touche jamais le net à reverser : il est suivi à part.
func AggregateByLandlord(payments []models.Payment, buildings []models.Building, landlords []models.Landlord, units []models.Unit, contracts []models.Contract, month time.Time) []LandlordStatement {
	start, end := monthWindow(month)
	idx := buildLineage(units, contracts)

	buildingInfo := make(map[uint]models.Building, len(buildings))
	for _, b := range buildings {
		buildingInfo[b.ID] = b
	}

	statements := make([]LandlordStatement, 0, len(landlords))
	byLandlord := make(map[uint]*LandlordStatement, len(landlords))

	for _, l := range landlords {
		if !l.Active {
			continue
		}
		statements = append(statements, LandlordStatement{
			LandlordID:     l.ID,
			LandlordName:   l.Name,
			CommissionRate: l.CommissionRate,
			Buildings:      []BuildingBreakdown{},
		})
		byLandlord[l.ID] = &statements[len(statements)-1]
	}

	for _, p := range payments {
		if !inWindow(p.PeriodMonth, start, end) {
			continue
		}
		buildingID, ok := idx.buildingOf(p)
		if !ok {
			continue
		}
		b, ok := buildingInfo[buildingID]
		if !ok {
			continue
		}
		st, ok := byLandlord[b.LandlordID]
		if !ok {
			continue
		}

		var row *BuildingBreakdown
		for i := range st.Buildings {
			if st.Buildings[i].BuildingID == buildingID {
				row = &st.Buildings[i]
				break
			}
		}
		if row == nil {
			st.Buildings = append(st.Buildings, BuildingBreakdown{
				BuildingID:   buildingID,
				BuildingName: b.Name,
			})
			row = &st.Buildings[len(st.Buildings)-1]
		}

		switch p.Status {
		case models.PaymentStatusPaid:
			st.RentCollected += p.TotalAmount
			st.ManagementFees += p.AgencyShare
			row.RentCollected += p.TotalAmount
			row.ManagementFees += p.AgencyShare
		case models.PaymentStatusUnpaid:
			st.RentUnpaid += p.TotalAmount
			row.RentUnpaid += p.TotalAmount
		}
	}

	for i := range statements {
		st := &statements[i]
		st.NetPayout = st.RentCollected - st.ManagementFees
		for j := range st.Buildings {
			row := &st.Buildings[j]
			row.NetPayout = row.RentCollected - row.ManagementFees
		}
	}

	return statements
}

// AggregateAnnualSeries: AggregateMonthly sur les 12 mois d'une année,
// pour les courbes de tendance.
func AggregateAnnualSeries(payments []models.Payment, expenses []models.Expense, year int) []MonthlyAggregate {
	series := make([]MonthlyAggregate, 0, 12)
	for m := time.January; m <= time.December; m++ {
		month := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		series = append(series, AggregateMonthly(payments, expenses, month))
	}
	return series
}
