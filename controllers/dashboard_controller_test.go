package controllers

import (
	"net/http"
	"testing"

	"github.com/saldomental/saldo/models"
)

func TestDashboardPayload(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "dash@example.com")

	data := models.UserData{UserID: user.ID, Mood: 7, DailySavings: 10, SavedMoney: 30, DaysClean: 3}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", token, nil)
	wantStatus(t, w, http.StatusOK)
	payload := decodeData(t, w)

	stats, ok := payload["stats"].(map[string]interface{})
	if !ok {
		t.Fatalf("stats missing in payload: %v", payload)
	}
	if stats["per_day_average"].(float64) != 10 {
		t.Errorf("per_day_average = %v, want 10", stats["per_day_average"])
	}
	if stats["monthly_projection"].(float64) != 300 {
		t.Errorf("monthly_projection = %v, want 300", stats["monthly_projection"])
	}
	if stats["annual_projection"].(float64) != 3650 {
		t.Errorf("annual_projection = %v, want 3650", stats["annual_projection"])
	}

	checkin, ok := payload["checkin"].(map[string]interface{})
	if !ok {
		t.Fatalf("checkin missing in payload: %v", payload)
	}
	if can, _ := checkin["can_trigger"].(bool); !can {
		t.Error("can_trigger = false with no previous click")
	}
}

func TestDashboardCreatesDefaultRow(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "dashnew@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", token, nil)
	wantStatus(t, w, http.StatusOK)

	var data models.UserData
	if err := db.Where("user_id = ?", user.ID).First(&data).Error; err != nil {
		t.Fatalf("default row not created: %v", err)
	}
	if data.Mood != 7 {
		t.Errorf("default mood = %d, want 7", data.Mood)
	}
}

func TestUpdateMoodAppendsHistory(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "mood@example.com")

	for _, mood := range []int{4, 8} {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/mood", token, map[string]interface{}{"mood": mood})
		wantStatus(t, w, http.StatusOK)
	}

	var data models.UserData
	if err := db.Where("user_id = ?", user.ID).First(&data).Error; err != nil {
		t.Fatalf("reload user data: %v", err)
	}
	if data.Mood != 8 {
		t.Errorf("mood = %d, want 8", data.Mood)
	}

	var count int64
	db.Model(&models.MoodEntry{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("mood entries = %d, want 2", count)
	}

	w := doJSON(t, r, http.MethodPatch, "/api/v1/mood", token, map[string]interface{}{"mood": 11})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestAddCustomAmountCreditsGoals(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "milestone@example.com")

	data := models.UserData{UserID: user.ID, Mood: 7, SavedMoney: 100}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}
	goal := models.Goal{UserID: user.ID, Name: "Meta", Icon: "target", TargetAmount: 500, CurrentAmount: 100}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("seed goal: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/balance/add", token, map[string]interface{}{"amount": 25.5})
	wantStatus(t, w, http.StatusOK)

	var got models.UserData
	db.Where("user_id = ?", user.ID).First(&got)
	if got.SavedMoney != 125.5 {
		t.Errorf("saved_money = %v, want 125.5", got.SavedMoney)
	}
	var gotGoal models.Goal
	db.Where("id = ?", goal.ID).First(&gotGoal)
	if gotGoal.CurrentAmount != 125.5 {
		t.Errorf("goal current_amount = %v, want 125.5", gotGoal.CurrentAmount)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/balance/add", token, map[string]interface{}{"amount": -5})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestResetBalanceKeepsGoals(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "reset@example.com")

	data := models.UserData{UserID: user.ID, Mood: 7, SavedMoney: 80, DaysClean: 8}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}
	goal := models.Goal{UserID: user.ID, Name: "Meta", Icon: "target", TargetAmount: 500, CurrentAmount: 80}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("seed goal: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/balance/reset", token, nil)
	wantStatus(t, w, http.StatusOK)

	var got models.UserData
	db.Where("user_id = ?", user.ID).First(&got)
	if got.SavedMoney != 0 {
		t.Errorf("saved_money = %v, want 0", got.SavedMoney)
	}
	var gotGoal models.Goal
	db.Where("id = ?", goal.ID).First(&gotGoal)
	if gotGoal.CurrentAmount != 80 {
		t.Errorf("goal progress reset: %v", gotGoal.CurrentAmount)
	}
}
