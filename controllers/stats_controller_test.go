package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/utils"
)

func TestStatsAggregates(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)

	user, _ := createTestUser(t, db, "stats@example.com")
	now := time.Now()
	data := models.UserData{UserID: user.ID, Mood: 7, DailySavings: 1, LastSavingsClick: &now}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}
	goal := models.Goal{UserID: user.ID, Name: "Meta", Icon: "target", TargetAmount: 100}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("seed goal: %v", err)
	}

	utils.CacheDelete(statsCacheKey)
	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", "", nil)
	wantStatus(t, w, http.StatusOK)
	payload := decodeData(t, w)

	if payload["user_count"].(float64) != 1 {
		t.Errorf("user_count = %v, want 1", payload["user_count"])
	}
	if payload["goal_count"].(float64) != 1 {
		t.Errorf("goal_count = %v, want 1", payload["goal_count"])
	}
	if payload["checkins_today"].(float64) != 1 {
		t.Errorf("checkins_today = %v, want 1", payload["checkins_today"])
	}
}
