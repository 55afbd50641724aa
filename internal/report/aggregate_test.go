package report

import (
	"reflect"
	"testing"
	"time"

	"gestimmo-backend/internal/models"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func paidPayment(contractID uint, total, agency float64, period time.Time) models.Payment {
	return models.Payment{
		ContractID:  contractID,
		TotalAmount: total,
		AgencyShare: agency,
		OwnerShare:  total - agency,
		PeriodMonth: period,
		Status:      models.PaymentStatusPaid,
	}
}

func unpaidPayment(contractID uint, total float64, period time.Time) models.Payment {
	return models.Payment{
		ContractID:  contractID,
		TotalAmount: total,
		PeriodMonth: period,
		Status:      models.PaymentStatusUnpaid,
	}
}

// Scénario de référence : deux loyers payés à 100 000 (honoraires 10 000)
// et un impayé à 50 000 sur mars 2025.
func TestAggregateMonthly(t *testing.T) {
	mars := month(2025, time.March)
	payments := []models.Payment{
		paidPayment(1, 100000, 10000, mars),
		paidPayment(2, 100000, 10000, mars),
		unpaidPayment(3, 50000, mars),
	}

	agg := AggregateMonthly(payments, nil, mars)

	if agg.RentCollected != 200000 {
		t.Errorf("RentCollected = %v, attendu 200000", agg.RentCollected)
	}
	if agg.RentUnpaid != 50000 {
		t.Errorf("RentUnpaid = %v, attendu 50000", agg.RentUnpaid)
	}
	if agg.ManagementFees != 20000 {
		t.Errorf("ManagementFees = %v, attendu 20000", agg.ManagementFees)
	}
	if agg.Month != "2025-03" {
		t.Errorf("Month = %q, attendu %q", agg.Month, "2025-03")
	}
}

func TestAggregateMonthlyExpensesAndNet(t *testing.T) {
	mars := month(2025, time.March)
	payments := []models.Payment{paidPayment(1, 100000, 10000, mars)}
	expenses := []models.Expense{
		{Amount: 3000, Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{Amount: 2000, Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}, // hors fenêtre
	}

	agg := AggregateMonthly(payments, expenses, mars)

	if agg.Expenses != 3000 {
		t.Errorf("Expenses = %v, attendu 3000", agg.Expenses)
	}
	if agg.NetBalance != 7000 {
		t.Errorf("NetBalance = %v, attendu 7000", agg.NetBalance)
	}
}

// Fenêtre semi-ouverte : le 1er du mois suivant n'est pas compté, et les
// mois de longueur différente ne se recouvrent pas.
func TestAggregateMonthlyHalfOpenWindow(t *testing.T) {
	fev := month(2025, time.February)
	payments := []models.Payment{
		paidPayment(1, 1000, 100, fev),
		paidPayment(2, 2000, 200, month(2025, time.March)), // = borne haute, exclu
	}

	agg := AggregateMonthly(payments, nil, fev)
	if agg.RentCollected != 1000 {
		t.Errorf("RentCollected = %v, attendu 1000", agg.RentCollected)
	}
}

// partial ne compte ni en encaissé ni en impayé : collected+unpaid <= total
// avec égalité sans partial.
func TestAggregateMonthlyPartialUncounted(t *testing.T) {
	mars := month(2025, time.March)
	payments := []models.Payment{
		paidPayment(1, 100000, 10000, mars),
		unpaidPayment(2, 50000, mars),
		{ContractID: 3, TotalAmount: 30000, PeriodMonth: mars, Status: models.PaymentStatusPartial},
	}

	agg := AggregateMonthly(payments, nil, mars)
	var total float64
	for _, p := range payments {
		total += p.TotalAmount
	}
	if agg.RentCollected+agg.RentUnpaid >= total {
		t.Errorf("collected+unpaid = %v, devrait être < %v (partial non compté)",
			agg.RentCollected+agg.RentUnpaid, total)
	}
	if agg.RentCollected+agg.RentUnpaid != 150000 {
		t.Errorf("collected+unpaid = %v, attendu 150000", agg.RentCollected+agg.RentUnpaid)
	}
}

func fixtureLineage() ([]models.Building, []models.Unit, []models.Contract, []models.Landlord) {
	buildings := []models.Building{
		{ID: 1, LandlordID: 10, Name: "Résidence Les Lilas", Active: true},
		{ID: 2, LandlordID: 10, Name: "Immeuble Voltaire", Active: true},
		{ID: 3, LandlordID: 20, Name: "Villa Pasteur", Active: true},
	}
	units := []models.Unit{
		{ID: 1, BuildingID: 1, Status: models.UnitStatusOccupied},
		{ID: 2, BuildingID: 1, Status: models.UnitStatusVacant},
		{ID: 3, BuildingID: 2, Status: models.UnitStatusOccupied},
		{ID: 4, BuildingID: 3, Status: models.UnitStatusOccupied},
	}
	contracts := []models.Contract{
		{ID: 1, UnitID: 1},
		{ID: 2, UnitID: 3},
		{ID: 3, UnitID: 4},
	}
	landlords := []models.Landlord{
		{ID: 10, Name: "M. Bernard", CommissionRate: 10, Active: true},
		{ID: 20, Name: "Mme Caron", CommissionRate: 8, Active: true},
	}
	return buildings, units, contracts, landlords
}

func TestAggregateByBuilding(t *testing.T) {
	mars := month(2025, time.March)
	buildings, units, contracts, _ := fixtureLineage()
	payments := []models.Payment{
		paidPayment(1, 100000, 10000, mars),
		unpaidPayment(2, 80000, mars),
		paidPayment(3, 60000, 4800, mars),
	}

	reports := AggregateByBuilding(payments, buildings, units, contracts, mars)
	if len(reports) != 3 {
		t.Fatalf("len(reports) = %d, attendu 3", len(reports))
	}

	r1 := reports[0]
	if r1.BuildingID != 1 || r1.RentCollected != 100000 || r1.ManagementFees != 10000 {
		t.Errorf("immeuble 1 : %+v", r1)
	}
	if r1.NetPayout != 90000 {
		t.Errorf("NetPayout immeuble 1 = %v, attendu 90000", r1.NetPayout)
	}
	if r1.TotalUnits != 2 || r1.OccupiedUnits != 1 || r1.OccupancyRate != 0.5 {
		t.Errorf("occupation immeuble 1 : %+v", r1)
	}

	r2 := reports[1]
	if r2.RentUnpaid != 80000 || r2.RentCollected != 0 {
		t.Errorf("immeuble 2 : %+v", r2)
	}
}

// L'occupation est un instantané du statut courant, pas une donnée du mois :
// un immeuble sans encaissement sur la fenêtre garde son taux d'occupation.
func TestAggregateByBuildingOccupancyIndependentOfWindow(t *testing.T) {
	buildings, units, contracts, _ := fixtureLineage()

	reports := AggregateByBuilding(nil, buildings, units, contracts, month(2025, time.March))
	if reports[2].OccupancyRate != 1.0 {
		t.Errorf("OccupancyRate = %v, attendu 1.0", reports[2].OccupancyRate)
	}
	if reports[2].RentCollected != 0 {
		t.Errorf("RentCollected = %v, attendu 0", reports[2].RentCollected)
	}
}

// Un encaissement à la filiation cassée est exclu des ventilations mais
// reste compté dans les totaux du portefeuille. Asymétrie volontairement
// conservée.
func TestBrokenLineageAsymmetry(t *testing.T) {
	mars := month(2025, time.March)
	buildings, units, contracts, landlords := fixtureLineage()
	payments := []models.Payment{
		paidPayment(1, 100000, 10000, mars),
		paidPayment(999, 40000, 4000, mars), // bail supprimé
	}

	monthly := AggregateMonthly(payments, nil, mars)
	if monthly.RentCollected != 140000 {
		t.Errorf("portefeuille RentCollected = %v, attendu 140000", monthly.RentCollected)
	}

	reports := AggregateByBuilding(payments, buildings, units, contracts, mars)
	var ventile float64
	for _, r := range reports {
		ventile += r.RentCollected
	}
	if ventile != 100000 {
		t.Errorf("ventilation RentCollected = %v, attendu 100000", ventile)
	}

	statements := AggregateByLandlord(payments, buildings, landlords, units, contracts, mars)
	ventile = 0
	for _, st := range statements {
		ventile += st.RentCollected
	}
	if ventile != 100000 {
		t.Errorf("relevés RentCollected = %v, attendu 100000", ventile)
	}
}

func TestAggregateByLandlord(t *testing.T) {
	mars := month(2025, time.March)
	buildings, units, contracts, landlords := fixtureLineage()
	payments := []models.Payment{
		paidPayment(1, 100000, 10000, mars),
		unpaidPayment(2, 80000, mars),
		paidPayment(3, 60000, 4800, mars),
	}

	statements := AggregateByLandlord(payments, buildings, landlords, units, contracts, mars)
	if len(statements) != 2 {
		t.Fatalf("len(statements) = %d, attendu 2", len(statements))
	}

	st := statements[0]
	if st.LandlordID != 10 {
		t.Fatalf("LandlordID = %d, attendu 10", st.LandlordID)
	}
	if st.RentCollected != 100000 || st.RentUnpaid != 80000 || st.ManagementFees != 10000 {
		t.Errorf("relevé bailleur 10 : %+v", st)
	}
	// L'impayé n'entre jamais dans le net à reverser
	if st.NetPayout != 90000 {
		t.Errorf("NetPayout = %v, attendu 90000", st.NetPayout)
	}
	if len(st.Buildings) != 2 {
		t.Fatalf("len(Buildings) = %d, attendu 2", len(st.Buildings))
	}

	st2 := statements[1]
	if st2.LandlordID != 20 || st2.NetPayout != 55200 {
		t.Errorf("relevé bailleur 20 : %+v", st2)
	}
}

// Deux encaissements sur le même couple immeuble+bailleur cumulent dans la
// même ligne de ventilation, jamais de doublon.
func TestLandlordBreakdownAccumulates(t *testing.T) {
	mars := month(2025, time.March)
	buildings, units, contracts, landlords := fixtureLineage()
	payments := []models.Payment{
		paidPayment(1, 50000, 5000, mars),
		paidPayment(1, 50000, 5000, mars),
	}

	statements := AggregateByLandlord(payments, buildings, landlords, units, contracts, mars)
	st := statements[0]
	if len(st.Buildings) != 1 {
		t.Fatalf("len(Buildings) = %d, attendu 1", len(st.Buildings))
	}
	if st.Buildings[0].RentCollected != 100000 {
		t.Errorf("ligne immeuble RentCollected = %v, attendu 100000", st.Buildings[0].RentCollected)
	}
}

func TestAggregateAnnualSeries(t *testing.T) {
	payments := []models.Payment{
		paidPayment(1, 1000, 100, month(2025, time.January)),
		paidPayment(1, 2000, 200, month(2025, time.July)),
		paidPayment(1, 9000, 900, month(2024, time.July)), // autre année
	}

	series := AggregateAnnualSeries(payments, nil, 2025)
	if len(series) != 12 {
		t.Fatalf("len(series) = %d, attendu 12", len(series))
	}
	if series[0].RentCollected != 1000 {
		t.Errorf("janvier = %v, attendu 1000", series[0].RentCollected)
	}
	if series[6].RentCollected != 2000 {
		t.Errorf("juillet = %v, attendu 2000", series[6].RentCollected)
	}
	var rest float64
	for i, agg := range series {
		if i != 0 && i != 6 {
			rest += agg.RentCollected
		}
	}
	if rest != 0 {
		t.Errorf("autres mois = %v, attendu 0", rest)
	}
}

// Deux passes sur les mêmes entrées immuables rendent des structures
// identiques.
func TestAggregateIdempotence(t *testing.T) {
	mars := month(2025, time.March)
	buildings, units, contracts, landlords := fixtureLineage()
	payments := []models.Payment{
		paidPayment(1, 100000, 10000, mars),
		unpaidPayment(2, 80000, mars),
	}
	expenses := []models.Expense{{Amount: 500, Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)}}

	m1 := AggregateMonthly(payments, expenses, mars)
	m2 := AggregateMonthly(payments, expenses, mars)
	if !reflect.DeepEqual(m1, m2) {
		t.Errorf("AggregateMonthly non idempotent : %+v vs %+v", m1, m2)
	}

	b1 := AggregateByBuilding(payments, buildings, units, contracts, mars)
	b2 := AggregateByBuilding(payments, buildings, units, contracts, mars)
	if !reflect.DeepEqual(b1, b2) {
		t.Errorf("AggregateByBuilding non idempotent")
	}

	l1 := AggregateByLandlord(payments, buildings, landlords, units, contracts, mars)
	l2 := AggregateByLandlord(payments, buildings, landlords, units, contracts, mars)
	if !reflect.DeepEqual(l1, l2) {
		t.Errorf("AggregateByLandlord non idempotent")
	}
}

// Les immeubles et bailleurs inactifs ne produisent pas d'entrée.
func TestInactiveEntitiesExcluded(t *testing.T) {
	mars := month(2025, time.March)
	buildings := []models.Building{
		{ID: 1, LandlordID: 10, Name: "Actif", Active: true},
		{ID: 2, LandlordID: 10, Name: "Inactif", Active: false},
	}
	landlords := []models.Landlord{
		{ID: 10, Name: "Actif", Active: true},
		{ID: 20, Name: "Inactif", Active: false},
	}

	reports := AggregateByBuilding(nil, buildings, nil, nil, mars)
	if len(reports) != 1 || reports[0].BuildingID != 1 {
		t.Errorf("reports = %+v, attendu le seul immeuble actif", reports)
	}

	statements := AggregateByLandlord(nil, buildings, landlords, nil, nil, mars)
	if len(statements) != 1 || statements[0].LandlordID != 10 {
		t.Errorf("statements = %+v, attendu le seul bailleur actif", statements)
	}
}
