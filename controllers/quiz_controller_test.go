package controllers

import (
	"net/http"
	"testing"

	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/utils"
)

func TestQuizFlowOverHTTP(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "quiz@example.com")
	utils.DropQuizSession(user.ID)

	submit := func(value interface{}) map[string]interface{} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/answer", token, map[string]interface{}{"value": value})
		wantStatus(t, w, http.StatusOK)
		return decodeData(t, w)
	}

	// Contact block
	submit("Maria Silva")
	submit(30)
	submit("maria@example.com")
	submit("11999990000")

	// Scored blocks: all middle options keep the score at 50
	for i := 0; i < 5; i++ {
		submit(3)
	}

	// Branch taken: habit block appended
	state := submit("yes")
	if got := state["total_steps"].(float64); got != 14 {
		t.Fatalf("total_steps after branch = %v, want 14", got)
	}

	submit("alcohol")
	submit("daily")
	submit(300)
	state = submit("less6months")

	if state["screen"] != "report" {
		t.Fatalf("screen after last question = %v, want report", state["screen"])
	}
	if state["score"].(float64) != 50 {
		t.Errorf("score = %v, want 50", state["score"])
	}

	// Offer funnel: decline premium, accept basic; web client skips the wall
	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/advance", token, nil)
	wantStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/offer/decline", token, nil)
	wantStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/offer/accept", token, nil)
	wantStatus(t, w, http.StatusOK)
	state = decodeData(t, w)
	if state["screen"] != "complete" {
		t.Fatalf("screen after web accept = %v, want complete", state["screen"])
	}
	if state["payment_completed"] != true {
		t.Error("payment not auto-completed for web client")
	}

	// Finalize persists result, profile and savings rate
	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/finalize", token, nil)
	wantStatus(t, w, http.StatusOK)
	payload := decodeData(t, w)
	if payload["daily_savings"].(float64) != 10 {
		t.Errorf("daily_savings = %v, want 10", payload["daily_savings"])
	}

	var result models.QuizResult
	if err := db.Where("user_id = ?", user.ID).First(&result).Error; err != nil {
		t.Fatalf("reload quiz result: %v", err)
	}
	if result.FinalScore != 50 || result.Plan != "basic" || !result.PaymentCompleted || !result.HasHabit {
		t.Errorf("unexpected result row: %+v", result)
	}
	if result.HabitType != "alcohol" {
		t.Errorf("habit_type = %q, want alcohol", result.HabitType)
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if profile.FullName != "Maria Silva" {
		t.Errorf("full_name = %q, want Maria Silva", profile.FullName)
	}

	var data models.UserData
	if err := db.Where("user_id = ?", user.ID).First(&data).Error; err != nil {
		t.Fatalf("reload user data: %v", err)
	}
	if data.DailySavings != 10 {
		t.Errorf("user_data daily_savings = %v, want 10", data.DailySavings)
	}
	if data.Mood != 7 {
		t.Errorf("user_data mood = %d, want default 7", data.Mood)
	}
}

func TestQuizBranchNoSkipsHabitBlock(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "quizno@example.com")
	utils.DropQuizSession(user.ID)

	answers := []interface{}{"Ana", 25, "ana@example.com", "11999990001", 1, 2, 3, 4, 5}
	for _, v := range answers {
		w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/answer", token, map[string]interface{}{"value": v})
		wantStatus(t, w, http.StatusOK)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/answer", token, map[string]interface{}{"value": "no"})
	wantStatus(t, w, http.StatusOK)
	state := decodeData(t, w)
	if state["screen"] != "report" {
		t.Fatalf("screen after branch no = %v, want report", state["screen"])
	}
}

func TestQuizInvalidAnswerKeepsStep(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "quizbad@example.com")
	utils.DropQuizSession(user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/answer", token, map[string]interface{}{"value": "   "})
	wantStatus(t, w, http.StatusBadRequest)

	w = doJSON(t, r, http.MethodGet, "/api/v1/quiz/state", token, nil)
	wantStatus(t, w, http.StatusOK)
	state := decodeData(t, w)
	if state["step"].(float64) != 0 {
		t.Errorf("step advanced after invalid answer: %v", state["step"])
	}
}

func TestQuizBackReversesScoreOverHTTP(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "quizback@example.com")
	utils.DropQuizSession(user.ID)

	for _, v := range []interface{}{"Bia", 20, "bia@example.com", "11999990002"} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/answer", token, map[string]interface{}{"value": v})
		wantStatus(t, w, http.StatusOK)
	}

	// sleep answered with the top option: +10
	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/answer", token, map[string]interface{}{"value": 5})
	wantStatus(t, w, http.StatusOK)
	state := decodeData(t, w)
	if state["score"].(float64) != 60 {
		t.Fatalf("score = %v, want 60", state["score"])
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/back", token, nil)
	wantStatus(t, w, http.StatusOK)
	state = decodeData(t, w)
	if state["score"].(float64) != 50 {
		t.Errorf("score after back = %v, want 50", state["score"])
	}
	if state["step"].(float64) != 4 {
		t.Errorf("step after back = %v, want 4", state["step"])
	}
}

func TestQuizFinalizeRequiresCompletion(t *testing.T) {
	testSetup(t)
	db := testDB(t)
	r := testRouter(db)
	user, token := createTestUser(t, db, "quizearly@example.com")
	utils.DropQuizSession(user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/finalize", token, nil)
	wantStatus(t, w, http.StatusConflict)
}
