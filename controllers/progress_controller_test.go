package controllers

import (
	"net/http"
	"testing"

	"github.com/saldomental/saldo/models"
)

func TestProgressAchievements(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "progress@example.com")

	data := models.UserData{UserID: user.ID, Mood: 7, DaysClean: 30, SavedMoney: 150}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("seed user data: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/progress", token, nil)
	wantStatus(t, w, http.StatusOK)
	payload := decodeData(t, w)

	achievements, ok := payload["achievements"].([]interface{})
	if !ok || len(achievements) != 6 {
		t.Fatalf("achievements = %v, want 6 entries", payload["achievements"])
	}

	unlocked := map[string]bool{}
	for _, raw := range achievements {
		a := raw.(map[string]interface{})
		unlocked[a["id"].(string)] = a["unlocked"].(bool)
	}

	wantUnlocked := map[string]bool{
		"day_1":        true,
		"week_1":       true,
		"month_1":      true,
		"quarter":      false,
		"half_year":    false,
		"first_saving": true,
	}
	for id, want := range wantUnlocked {
		if unlocked[id] != want {
			t.Errorf("achievement %s unlocked = %v, want %v", id, unlocked[id], want)
		}
	}
}

func TestProgressMoodHistoryLimitedToSeven(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "moodhist@example.com")

	for i := 0; i < 10; i++ {
		entry := models.MoodEntry{UserID: user.ID, Mood: (i % 10) + 1}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("seed mood entry: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/progress", token, nil)
	wantStatus(t, w, http.StatusOK)
	payload := decodeData(t, w)

	history, ok := payload["mood_history"].([]interface{})
	if !ok {
		t.Fatalf("mood_history missing: %v", payload)
	}
	if len(history) != 7 {
		t.Errorf("mood_history length = %d, want 7", len(history))
	}
}

func TestChatReplyIsCanned(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	_, token := createTestUser(t, db, "chat@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/chat/greeting", token, nil)
	wantStatus(t, w, http.StatusOK)
	payload := decodeData(t, w)
	if payload["reply"] != coachGreeting {
		t.Errorf("greeting = %v", payload["reply"])
	}

	known := map[string]bool{}
	for _, s := range coachReplies {
		known[s] = true
	}
	for i := 0; i < 10; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/v1/chat/message", token, map[string]interface{}{"message": "estou ansioso"})
		wantStatus(t, w, http.StatusOK)
		reply := decodeData(t, w)["reply"].(string)
		if !known[reply] {
			t.Fatalf("reply %q is not one of the canned responses", reply)
		}
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/chat/message", token, map[string]interface{}{"message": "  "})
	wantStatus(t, w, http.StatusBadRequest)
}
