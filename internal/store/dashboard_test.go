package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"hospital-schemes-server/internal/store"
	"hospital-schemes-server/internal/testutil"
)

func TestDashboardEmpty(t *testing.T) {
	s := testutil.SetupTestStore(t)

	dash, err := s.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.TotalPatients != 0 || dash.TotalSchemes != 0 || !dash.TotalClaimed.IsZero() {
		t.Errorf("totals = (%d, %d, %s), want zeros", dash.TotalPatients, dash.TotalSchemes, dash.TotalClaimed)
	}
	if dash.SchemeStats == nil || dash.RecentEnrollments == nil || dash.Patients == nil {
		t.Error("Dashboard() returned nil lists, want empty lists")
	}
	if dash.Degraded {
		t.Error("Dashboard() reported degraded on a healthy store")
	}
}

func TestDashboardAggregates(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	if err := s.SeedSchemes(ctx, store.DefaultSchemes(), store.SeedUpsert); err != nil {
		t.Fatalf("SeedSchemes() error = %v", err)
	}
	schemes, err := s.ListSchemes(ctx)
	if err != nil {
		t.Fatalf("ListSchemes() error = %v", err)
	}
	ayushman := schemes[0].ID

	_, _, err = s.RegisterPatient(ctx, store.PatientInput{
		Name:        "Asha Devi",
		DateOfBirth: testutil.Date(t, "1990-04-15"),
	}, &store.EnrollmentInput{
		SchemeID:   ayushman,
		EnrollDate: testutil.Date(t, "2024-01-10"),
		AmtClaimed: testutil.Amount(t, "1500.00"),
	})
	if err != nil {
		t.Fatalf("RegisterPatient() error = %v", err)
	}
	testutil.CreateTestPatient(t, s, "Ravi Kumar", "1985-06-12")

	dash, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.TotalPatients != 2 || dash.TotalSchemes != 3 {
		t.Errorf("totals = (%d patients, %d schemes), want (2, 3)", dash.TotalPatients, dash.TotalSchemes)
	}
	if dash.TotalClaimed.StringFixed(2) != "1500.00" {
		t.Errorf("TotalClaimed = %s, want 1500.00", dash.TotalClaimed.StringFixed(2))
	}

	if len(dash.SchemeStats) != 3 {
		t.Fatalf("SchemeStats has %d rows, want every scheme", len(dash.SchemeStats))
	}
	for _, stat := range dash.SchemeStats {
		wantCount, wantAmount := int64(0), "0.00"
		if stat.SchemeID == ayushman {
			wantCount, wantAmount = 1, "1500.00"
		}
		if stat.EnrollmentCount != wantCount || stat.TotalAmount.StringFixed(2) != wantAmount {
			t.Errorf("%s stat = (%d, %s), want (%d, %s)",
				stat.SchemeName, stat.EnrollmentCount, stat.TotalAmount.StringFixed(2), wantCount, wantAmount)
		}
	}

	if len(dash.RecentEnrollments) != 1 {
		t.Fatalf("RecentEnrollments has %d rows, want 1", len(dash.RecentEnrollments))
	}
	recent := dash.RecentEnrollments[0]
	if recent.PatientName != "Asha Devi" || recent.SchemeName != "Ayushman Bharat" || recent.EnrollDate != "2024-01-10" {
		t.Errorf("recent enrollment = %+v", recent)
	}

	if len(dash.Patients) != 2 {
		t.Fatalf("Patients has %d rows, want 2", len(dash.Patients))
	}
	if dash.Patients[0].Name != "Ravi Kumar" || dash.Patients[0].EnrollmentCount != 0 {
		t.Errorf("Patients[0] = %+v, want Ravi Kumar with 0 enrollments", dash.Patients[0])
	}
	if dash.Patients[1].Name != "Asha Devi" || dash.Patients[1].EnrollmentCount != 1 || dash.Patients[1].DOB != "1990-04-15" {
		t.Errorf("Patients[1] = %+v, want Asha Devi born 1990-04-15 with 1 enrollment", dash.Patients[1])
	}
}

func TestTotalClaimedMatchesRowSum(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	schemeID := testutil.CreateTestScheme(t, s, "PMJAY", "2018-09-23")
	patientID := testutil.CreateTestPatient(t, s, "Asha Devi", "1990-04-15")

	amounts := []string{"0.10", "0.20", "1234.56", "0", "99.99"}
	want := decimal.Zero
	for i, amount := range amounts {
		testutil.EnrollTestPatient(t, s, patientID, schemeID, fmt.Sprintf("2024-01-%02d", i+1), amount)
		want = want.Add(testutil.Amount(t, amount))
	}

	total, err := s.TotalClaimed(ctx)
	if err != nil {
		t.Fatalf("TotalClaimed() error = %v", err)
	}
	if total.StringFixed(2) != want.StringFixed(2) {
		t.Errorf("TotalClaimed() = %s, want %s", total.StringFixed(2), want.StringFixed(2))
	}

	dash, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.SchemeStats[0].TotalAmount.StringFixed(2) != want.StringFixed(2) {
		t.Errorf("scheme total = %s, want %s", dash.SchemeStats[0].TotalAmount.StringFixed(2), want.StringFixed(2))
	}
}

func TestDashboardRecentEnrollmentsLimit(t *testing.T) {
	s := testutil.SetupTestStore(t)
	schemeID := testutil.CreateTestScheme(t, s, "PMJAY", "2018-09-23")
	patientID := testutil.CreateTestPatient(t, s, "Asha Devi", "1990-04-15")

	var lastSameDay uint
	for i := 1; i <= store.RecentEnrollmentLimit+2; i++ {
		testutil.EnrollTestPatient(t, s, patientID, schemeID, fmt.Sprintf("2024-02-%02d", i), "1.00")
	}
	for i := 0; i < 2; i++ {
		lastSameDay = testutil.EnrollTestPatient(t, s, patientID, schemeID, "2024-03-01", "1.00")
	}

	dash, err := s.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if len(dash.RecentEnrollments) != store.RecentEnrollmentLimit {
		t.Fatalf("RecentEnrollments has %d rows, want %d", len(dash.RecentEnrollments), store.RecentEnrollmentLimit)
	}
	if dash.RecentEnrollments[0].ID != lastSameDay {
		t.Errorf("first recent enrollment = %d, want %d", dash.RecentEnrollments[0].ID, lastSameDay)
	}
	for i := 1; i < len(dash.RecentEnrollments); i++ {
		prev, cur := dash.RecentEnrollments[i-1], dash.RecentEnrollments[i]
		if cur.EnrollDate > prev.EnrollDate || (cur.EnrollDate == prev.EnrollDate && cur.ID > prev.ID) {
			t.Errorf("recent enrollments out of order at %d: %+v after %+v", i, cur, prev)
		}
	}
	if dash.TotalClaimed.StringFixed(2) != "14.00" {
		t.Errorf("TotalClaimed = %s, want 14.00", dash.TotalClaimed.StringFixed(2))
	}
}
