package quiz

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Screen is the single source of truth for what the onboarding flow is
// showing. Exactly one screen is active at a time.
type Screen string

const (
	ScreenQuestion     Screen = "question"
	ScreenReport       Screen = "report"
	ScreenPremiumOffer Screen = "premium_offer"
	ScreenBasicOffer   Screen = "basic_offer"
	ScreenTrialOffer   Screen = "trial_offer"
	ScreenPayment      Screen = "payment"
	ScreenComplete     Screen = "complete"
)

// Plan identifies the subscription tier selected in the offer funnel.
type Plan string

const (
	PlanPremium Plan = "premium"
	PlanBasic   Plan = "basic"
	PlanTrial   Plan = "trial"
)

const initialScore = 50

var (
	ErrNotOnQuestion = errors.New("quiz: not on a question step")
	ErrNotOnOffer    = errors.New("quiz: not on an offer screen")
	ErrNotOnPayment  = errors.New("quiz: not on the payment screen")
	ErrCorruptState  = errors.New("quiz: step index outside question sequence")

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationError reports a malformed answer. It never advances the flow;
// the same question is re-presented.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quiz: invalid answer for %q: %s", e.QuestionID, e.Reason)
}

func invalid(questionID, reason string) error {
	return &ValidationError{QuestionID: questionID, Reason: reason}
}

// Answer is one recorded answer, kept in question order.
type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      interface{} `json:"value"`
}

// Adjustment is one entry of the score adjustment log: the points applied
// at a step, so that going back reverses the score exactly.
type Adjustment struct {
	Step   int `json:"step"`
	Points int `json:"points"`
}

// Engine drives the linear-with-branch questionnaire, the running score
// and the offer funnel. It holds no I/O; callers persist snapshots via
// JSON. Invariant: Score == 50 + sum of Log points after every operation.
type Engine struct {
	Screen           Screen       `json:"screen"`
	Step             int          `json:"step"`
	Score            int          `json:"score"`
	HasHabit         bool         `json:"has_habit"`
	BranchExtended   bool         `json:"branch_extended"`
	Answers          []Answer     `json:"answers"`
	Log              []Adjustment `json:"log"`
	Plan             Plan         `json:"plan,omitempty"`
	PaymentCompleted bool         `json:"payment_completed"`
}

// Result is the immutable snapshot handed off when the flow completes.
type Result struct {
	FinalScore       int      `json:"final_score"`
	DailySavings     float64  `json:"daily_savings"`
	Plan             Plan     `json:"plan,omitempty"`
	PaymentCompleted bool     `json:"payment_completed"`
	HasHabit         bool     `json:"has_habit"`
	Answers          []Answer `json:"answers"`
}

// NewEngine returns an engine at the first question with the default score.
func NewEngine() *Engine {
	return &Engine{Screen: ScreenQuestion, Score: initialScore}
}

// Clone returns an independent copy of the engine. Answer values are JSON
// scalars, so copying the slices is enough.
func (e *Engine) Clone() *Engine {
	c := *e
	c.Answers = make([]Answer, len(e.Answers))
	copy(c.Answers, e.Answers)
	c.Log = make([]Adjustment, len(e.Log))
	copy(c.Log, e.Log)
	return &c
}

// Sequence returns the active question sequence. The habit block stays
// appended for the rest of the session once the branch was taken, even if
// the branch question is later revisited and answered differently.
func (e *Engine) Sequence() []Question {
	if !e.BranchExtended {
		return BaseQuestions()
	}
	out := make([]Question, 0, len(baseQuestions)+len(habitQuestions))
	out = append(out, baseQuestions...)
	out = append(out, habitQuestions...)
	return out
}

// Current returns the question at the current step.
func (e *Engine) Current() (Question, error) {
	seq := e.Sequence()
	if e.Step < 0 || e.Step >= len(seq) {
		return Question{}, ErrCorruptState
	}
	return seq[e.Step], nil
}

// SubmitAnswer validates the value against the current question, records
// it, applies scale points to the score and advances the flow. The branch
// question decides between extending the sequence ("yes") and jumping
// straight to the report ("não"), skipping anything that remains.
func (e *Engine) SubmitAnswer(value interface{}) error {
	if e.Screen != ScreenQuestion {
		return ErrNotOnQuestion
	}
	q, err := e.Current()
	if err != nil {
		return err
	}

	norm, points, hasPoints, err := normalizeAnswer(q, value)
	if err != nil {
		return err
	}

	e.record(q.ID, norm)
	if hasPoints {
		e.Score += points
		e.Log = append(e.Log, Adjustment{Step: e.Step, Points: points})
	}

	if q.ID == BranchQuestionID {
		yes := norm.(bool)
		e.HasHabit = yes
		if yes {
			e.BranchExtended = true
			e.Step++
		} else {
			e.Screen = ScreenReport
		}
		return nil
	}

	if e.Step >= len(e.Sequence())-1 {
		e.Screen = ScreenReport
	} else {
		e.Step++
	}
	return nil
}

// GoBack steps one screen backwards. On the question flow it reverses any
// points logged for the step being left; on the offer funnel it walks the
// fixed screen sequence. At the first question it is a no-op.
func (e *Engine) GoBack() {
	switch e.Screen {
	case ScreenPayment:
		switch e.Plan {
		case PlanTrial:
			e.Screen = ScreenTrialOffer
		case PlanBasic:
			e.Screen = ScreenBasicOffer
		default:
			e.Screen = ScreenPremiumOffer
		}
	case ScreenTrialOffer:
		e.Screen = ScreenBasicOffer
	case ScreenBasicOffer:
		e.Screen = ScreenPremiumOffer
	case ScreenPremiumOffer:
		e.Screen = ScreenReport
	case ScreenReport:
		e.Screen = ScreenQuestion
	case ScreenQuestion:
		if e.Step == 0 {
			return
		}
		e.revertStep(e.Step - 1)
		e.Step--
	}
}

// revertStep removes the adjustment logged for the given step, if any, and
// subtracts its points from the score.
func (e *Engine) revertStep(step int) {
	for i, adj := range e.Log {
		if adj.Step == step {
			e.Score -= adj.Points
			e.Log = append(e.Log[:i], e.Log[i+1:]...)
			return
		}
	}
}

// AdvanceFromReport moves from the report into the offer funnel.
func (e *Engine) AdvanceFromReport() error {
	if e.Screen != ScreenReport {
		return fmt.Errorf("quiz: cannot advance from %s", e.Screen)
	}
	e.Screen = ScreenPremiumOffer
	return nil
}

// AcceptOffer takes the plan shown by the current offer screen to the
// payment wall.
func (e *Engine) AcceptOffer() error {
	switch e.Screen {
	case ScreenPremiumOffer:
		e.Plan = PlanPremium
	case ScreenBasicOffer:
		e.Plan = PlanBasic
	case ScreenTrialOffer:
		e.Plan = PlanTrial
	default:
		return ErrNotOnOffer
	}
	e.Screen = ScreenPayment
	return nil
}

// DeclineOffer moves to the next cheaper offer; declining the trial exits
// on the free path and completes the flow.
func (e *Engine) DeclineOffer() error {
	switch e.Screen {
	case ScreenPremiumOffer:
		e.Screen = ScreenBasicOffer
	case ScreenBasicOffer:
		e.Screen = ScreenTrialOffer
	case ScreenTrialOffer:
		e.Plan = ""
		e.Screen = ScreenComplete
	default:
		return ErrNotOnOffer
	}
	return nil
}

// CompletePayment marks the simulated purchase as done and finishes the
// flow. Real billing never happens here.
func (e *Engine) CompletePayment() error {
	if e.Screen != ScreenPayment {
		return ErrNotOnPayment
	}
	e.PaymentCompleted = true
	e.Screen = ScreenComplete
	return nil
}

// Completed reports whether the flow reached its terminal state.
func (e *Engine) Completed() bool {
	return e.Screen == ScreenComplete
}

// Restart resets the engine to its initial defaults. Idempotent.
func (e *Engine) Restart() {
	*e = *NewEngine()
}

// Finalize clamps the score to [0,100], derives the daily savings rate
// from the reported monthly habit spending and snapshots all answers.
// Clamping happens only here, never during navigation.
func (e *Engine) Finalize() Result {
	score := e.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	daily := 0.0
	if monthly, ok := e.AnswerFloat("habit_monthly_spending"); ok && monthly > 0 {
		daily = math.Round(monthly/30*100) / 100
	}

	answers := make([]Answer, len(e.Answers))
	copy(answers, e.Answers)

	return Result{
		FinalScore:       score,
		DailySavings:     daily,
		Plan:             e.Plan,
		PaymentCompleted: e.PaymentCompleted,
		HasHabit:         e.HasHabit,
		Answers:          answers,
	}
}

// record stores the answer under the question id, replacing any earlier
// answer for the same question while keeping the original order.
func (e *Engine) record(questionID string, value interface{}) {
	for i := range e.Answers {
		if e.Answers[i].QuestionID == questionID {
			e.Answers[i].Value = value
			return
		}
	}
	e.Answers = append(e.Answers, Answer{QuestionID: questionID, Value: value})
}

// AnswerString returns a recorded string answer.
func (e *Engine) AnswerString(questionID string) (string, bool) {
	for _, a := range e.Answers {
		if a.QuestionID == questionID {
			s, ok := a.Value.(string)
			return s, ok
		}
	}
	return "", false
}

// AnswerFloat returns a recorded numeric answer. Values restored from a
// JSON snapshot arrive as float64.
func (e *Engine) AnswerFloat(questionID string) (float64, bool) {
	for _, a := range e.Answers {
		if a.QuestionID == questionID {
			switch v := a.Value.(type) {
			case float64:
				return v, true
			case int:
				return float64(v), true
			}
			return 0, false
		}
	}
	return 0, false
}

// normalizeAnswer enforces the question's type contract and returns the
// canonical value plus the point delta for scale questions.
func normalizeAnswer(q Question, value interface{}) (norm interface{}, points int, hasPoints bool, err error) {
	switch q.Type {
	case TypeText, TypePhone:
		s, ok := value.(string)
		s = strings.TrimSpace(s)
		if !ok || s == "" {
			return nil, 0, false, invalid(q.ID, "texto não pode ser vazio")
		}
		return s, 0, false, nil

	case TypeEmail:
		s, ok := value.(string)
		s = strings.TrimSpace(s)
		if !ok || !emailPattern.MatchString(s) {
			return nil, 0, false, invalid(q.ID, "insira um e-mail válido (ex: seu@email.com)")
		}
		return s, 0, false, nil

	case TypeNumber:
		f, ok := toFloat(value)
		if !ok || f <= 0 {
			return nil, 0, false, invalid(q.ID, "informe um número maior que zero")
		}
		return f, 0, false, nil

	case TypeScale:
		f, ok := toFloat(value)
		if !ok {
			return nil, 0, false, invalid(q.ID, "opção inválida")
		}
		v := int(f)
		for _, opt := range q.Scale {
			if opt.Value == v {
				return v, opt.Points, true, nil
			}
		}
		return nil, 0, false, invalid(q.ID, "opção inválida")

	case TypeChoice:
		s, _ := value.(string)
		for _, opt := range q.Choices {
			if opt.Value == s {
				return s, 0, false, nil
			}
		}
		return nil, 0, false, invalid(q.ID, "opção inválida")

	case TypeYesNo:
		switch v := value.(type) {
		case bool:
			return v, 0, false, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "yes", "sim", "true":
				return true, 0, false, nil
			case "no", "não", "nao", "false":
				return false, 0, false, nil
			}
		}
		return nil, 0, false, invalid(q.ID, "responda sim ou não")
	}
	return nil, 0, false, invalid(q.ID, "tipo de pergunta desconhecido")
}

// toFloat accepts the numeric shapes a JSON body or snapshot can carry.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}
