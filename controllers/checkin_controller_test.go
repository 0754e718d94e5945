package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/saldomental/saldo/models"
)

func TestCheckinCreditsBalanceAndGoals(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "checkin@example.com")

	data := models.UserData{UserID: user.ID, Mood: 7, DailySavings: 10, SavedMoney: 0, DaysClean: 0}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}
	goals := []models.Goal{
		{UserID: user.ID, Name: "Viagem", Icon: "plane", TargetAmount: 1000, CurrentAmount: 5},
		{UserID: user.ID, Name: "Reserva", Icon: "target", TargetAmount: 500, CurrentAmount: 20},
	}
	for i := range goals {
		if err := db.Create(&goals[i]).Error; err != nil {
			t.Fatalf("seed goal: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, nil)
	wantStatus(t, w, http.StatusOK)

	var got models.UserData
	if err := db.Where("user_id = ?", user.ID).First(&got).Error; err != nil {
		t.Fatalf("reload user data: %v", err)
	}
	if got.DaysClean != 1 {
		t.Errorf("days_clean = %d, want 1", got.DaysClean)
	}
	if got.SavedMoney != 10 {
		t.Errorf("saved_money = %v, want 10", got.SavedMoney)
	}
	if got.LastSavingsClick == nil {
		t.Fatal("last_savings_click not stamped")
	}

	var gotGoals []models.Goal
	if err := db.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&gotGoals).Error; err != nil {
		t.Fatalf("reload goals: %v", err)
	}
	wantAmounts := []float64{15, 30}
	for i, g := range gotGoals {
		if g.CurrentAmount != wantAmounts[i] {
			t.Errorf("goal %q current_amount = %v, want %v", g.Name, g.CurrentAmount, wantAmounts[i])
		}
	}
}

func TestCheckinRejectedDuringCooldown(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "cooldown@example.com")

	recent := time.Now().Add(-1 * time.Hour)
	data := models.UserData{UserID: user.ID, Mood: 7, DailySavings: 10, SavedMoney: 50, DaysClean: 5, LastSavingsClick: &recent}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, nil)
	wantStatus(t, w, http.StatusTooManyRequests)

	var got models.UserData
	if err := db.Where("user_id = ?", user.ID).First(&got).Error; err != nil {
		t.Fatalf("reload user data: %v", err)
	}
	if got.DaysClean != 5 || got.SavedMoney != 50 {
		t.Errorf("state changed under cooldown: days=%d money=%v", got.DaysClean, got.SavedMoney)
	}
}

func TestCheckinAllowedAtWindowBoundary(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "boundary@example.com")

	old := time.Now().Add(-25 * time.Hour)
	data := models.UserData{UserID: user.ID, Mood: 7, DailySavings: 3.5, SavedMoney: 7, DaysClean: 2, LastSavingsClick: &old}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, nil)
	wantStatus(t, w, http.StatusOK)

	var got models.UserData
	if err := db.Where("user_id = ?", user.ID).First(&got).Error; err != nil {
		t.Fatalf("reload user data: %v", err)
	}
	if got.DaysClean != 3 {
		t.Errorf("days_clean = %d, want 3", got.DaysClean)
	}
	if got.SavedMoney != 10.5 {
		t.Errorf("saved_money = %v, want 10.5", got.SavedMoney)
	}
}

func TestCheckinStatusReflectsCooldown(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "status@example.com")

	recent := time.Now().Add(-23*time.Hour - 58*time.Minute - 30*time.Second)
	data := models.UserData{UserID: user.ID, Mood: 7, DailySavings: 1, LastSavingsClick: &recent}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/checkin/status", token, nil)
	wantStatus(t, w, http.StatusOK)
	payload := decodeData(t, w)

	if can, _ := payload["can_trigger"].(bool); can {
		t.Error("can_trigger = true before window elapsed")
	}
	if display, _ := payload["remaining_display"].(string); display != "0h 1m" {
		t.Errorf("remaining_display = %q, want %q", display, "0h 1m")
	}
}

func TestCheckinWithoutUserDataIsNotFound(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	_, token := createTestUser(t, db, "nodata@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, nil)
	wantStatus(t, w, http.StatusNotFound)
}
