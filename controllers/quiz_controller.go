package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saldomental/saldo/middleware"
	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/quiz"
	"github.com/saldomental/saldo/utils"
)

// QuizController exposes the onboarding flow over HTTP. The engine itself
// is pure; this layer loads and stores per-user snapshots and persists the
// final result.
type QuizController struct {
	db *gorm.DB
}

// NewQuizController creates a QuizController.
func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{db: db}
}

// State returns the current flow snapshot for the authenticated user.
func (q *QuizController) State(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}
	engine := utils.LoadQuizSession(userID)
	utils.Success(ctx, statePayload(engine))
}

// Answer records an answer for the current question and advances the flow.
func (q *QuizController) Answer(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Value interface{} `json:"value"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	engine := utils.LoadQuizSession(userID)
	if err := engine.SubmitAnswer(req.Value); err != nil {
		var verr *quiz.ValidationError
		if errors.As(err, &verr) {
			utils.Error(ctx, http.StatusBadRequest, 40021, verr.Reason)
			return
		}
		utils.Error(ctx, http.StatusConflict, 40920, err.Error())
		return
	}

	utils.SaveQuizSession(userID, engine)
	utils.Success(ctx, statePayload(engine))
}

// Back navigates one step backwards, reversing any score adjustment.
func (q *QuizController) Back(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	engine := utils.LoadQuizSession(userID)
	engine.GoBack()
	utils.SaveQuizSession(userID, engine)
	utils.Success(ctx, statePayload(engine))
}

// Restart resets the flow to the first question.
func (q *QuizController) Restart(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	engine := utils.LoadQuizSession(userID)
	engine.Restart()
	utils.SaveQuizSession(userID, engine)
	utils.Success(ctx, statePayload(engine))
}

// Advance moves from the report screen into the offer funnel.
func (q *QuizController) Advance(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	engine := utils.LoadQuizSession(userID)
	if err := engine.AdvanceFromReport(); err != nil {
		utils.Error(ctx, http.StatusConflict, 40921, err.Error())
		return
	}
	utils.SaveQuizSession(userID, engine)
	utils.Success(ctx, statePayload(engine))
}

// AcceptOffer selects the offered plan and moves to the payment wall.
// Web clients skip the wall entirely; only the launcher app shows it.
func (q *QuizController) AcceptOffer(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	engine := utils.LoadQuizSession(userID)
	if err := engine.AcceptOffer(); err != nil {
		utils.Error(ctx, http.StatusConflict, 40922, err.Error())
		return
	}

	if engine.Screen == quiz.ScreenPayment && !isLauncherClient(ctx) {
		if err := engine.CompletePayment(); err != nil {
			utils.Error(ctx, http.StatusConflict, 40923, err.Error())
			return
		}
	}

	utils.SaveQuizSession(userID, engine)
	utils.Success(ctx, statePayload(engine))
}

// DeclineOffer moves to the next cheaper offer, or exits free after trial.
func (q *QuizController) DeclineOffer(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	engine := utils.LoadQuizSession(userID)
	if err := engine.DeclineOffer(); err != nil {
		utils.Error(ctx, http.StatusConflict, 40922, err.Error())
		return
	}
	utils.SaveQuizSession(userID, engine)
	utils.Success(ctx, statePayload(engine))
}

// CompletePayment finishes the simulated purchase from the payment wall.
func (q *QuizController) CompletePayment(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	engine := utils.LoadQuizSession(userID)
	if err := engine.CompletePayment(); err != nil {
		utils.Error(ctx, http.StatusConflict, 40923, err.Error())
		return
	}
	utils.SaveQuizSession(userID, engine)
	utils.Success(ctx, statePayload(engine))
}

// Finalize persists the completed flow: quiz result row, profile name and
// the user's savings rate. The session snapshot is dropped afterwards.
func (q *QuizController) Finalize(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	engine := utils.LoadQuizSession(userID)
	if !engine.Completed() {
		utils.Error(ctx, http.StatusConflict, 40924, "quiz flow not completed")
		return
	}

	result := engine.Finalize()

	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to encode answers")
		return
	}
	habitType, _ := engine.AnswerString("habit_type")

	record := models.QuizResult{
		UserID:           userID,
		FinalScore:       result.FinalScore,
		DailySavings:     result.DailySavings,
		Plan:             string(result.Plan),
		PaymentCompleted: result.PaymentCompleted,
		HasHabit:         result.HasHabit,
		HabitType:        habitType,
		Answers:          string(answersJSON),
	}

	err = q.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if name, ok := engine.AnswerString("name"); ok {
			name = utils.Sanitize(strings.TrimSpace(name))
			if name != "" {
				var profile models.Profile
				err := tx.Where("user_id = ?", userID).First(&profile).Error
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					if err := tx.Create(&models.Profile{UserID: userID, FullName: name}).Error; err != nil {
						return err
					}
				case err != nil:
					return err
				default:
					if err := tx.Model(&profile).Update("full_name", name).Error; err != nil {
						return err
					}
				}
			}
		}

		var data models.UserData
		err := tx.Where("user_id = ?", userID).First(&data).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			data = models.UserData{UserID: userID, Mood: 7, DailySavings: result.DailySavings}
			return tx.Create(&data).Error
		case err != nil:
			return err
		default:
			return tx.Model(&data).Update("daily_savings", result.DailySavings).Error
		}
	})
	if err != nil {
		utils.Sugar.Errorf("finalize quiz for user %d failed: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to persist quiz result")
		return
	}

	utils.DropQuizSession(userID)

	utils.Success(ctx, gin.H{
		"result_id":         record.ID,
		"final_score":       result.FinalScore,
		"daily_savings":     result.DailySavings,
		"plan":              record.Plan,
		"payment_completed": record.PaymentCompleted,
	})
}

// Results lists the user's past quiz results, newest first.
func (q *QuizController) Results(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var results []models.QuizResult
	if err := q.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&results).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to retrieve results")
		return
	}
	utils.Success(ctx, gin.H{"items": results})
}

// isLauncherClient recognizes the mobile launcher app by its User-Agent
// marker or the explicit header the launcher webview injects.
func isLauncherClient(ctx *gin.Context) bool {
	if ctx.GetHeader("X-App-Launcher") != "" {
		return true
	}
	return strings.Contains(ctx.GetHeader("User-Agent"), "SaldoLauncher")
}

func statePayload(e *quiz.Engine) gin.H {
	payload := gin.H{
		"screen":            e.Screen,
		"step":              e.Step,
		"total_steps":       len(e.Sequence()),
		"score":             e.Score,
		"plan":              e.Plan,
		"payment_completed": e.PaymentCompleted,
	}
	if e.Screen == quiz.ScreenQuestion {
		if q, err := e.Current(); err == nil {
			payload["question"] = q
		}
	}
	return payload
}
