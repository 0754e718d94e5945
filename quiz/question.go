package quiz

// QuestionType decides how an answer is validated and whether it carries points.
type QuestionType string

const (
	TypeText   QuestionType = "text"
	TypeNumber QuestionType = "number"
	TypeEmail  QuestionType = "email"
	TypePhone  QuestionType = "phone"
	TypeScale  QuestionType = "scale"
	TypeChoice QuestionType = "choice"
	TypeYesNo  QuestionType = "yes-no"
)

// ScaleOption is a 1-5 answer that carries a wellness point delta.
type ScaleOption struct {
	Value  int    `json:"value"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// ChoiceOption is an enumerated answer without points.
type ChoiceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question describes one step of the onboarding questionnaire.
type Question struct {
	ID          string         `json:"id"`
	Block       int            `json:"block"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Type        QuestionType   `json:"type"`
	Placeholder string         `json:"placeholder,omitempty"`
	Scale       []ScaleOption  `json:"scale,omitempty"`
	Choices     []ChoiceOption `json:"choices,omitempty"`
}

// BranchQuestionID is the single question whose answer decides whether the
// habit block is appended to the sequence.
const BranchQuestionID = "has_habit"

var scaleFrequency = []ScaleOption{
	{Value: 1, Label: "Nunca", Points: -10},
	{Value: 2, Label: "Raramente", Points: -5},
	{Value: 3, Label: "Às vezes", Points: 0},
	{Value: 4, Label: "Frequentemente", Points: 5},
	{Value: 5, Label: "Sempre", Points: 10},
}

// baseQuestions is the fixed sequence: contact block, two scored wellness
// blocks and the habit filter question.
var baseQuestions = []Question{
	{
		ID:          "name",
		Block:       1,
		Title:       "Qual é o seu nome?",
		Subtitle:    "Vamos começar nos conhecendo",
		Type:        TypeText,
		Placeholder: "Digite seu nome completo",
	},
	{
		ID:          "age",
		Block:       1,
		Title:       "Qual é a sua idade?",
		Subtitle:    "Isso nos ajuda a personalizar sua experiência",
		Type:        TypeNumber,
		Placeholder: "Digite sua idade",
	},
	{
		ID:          "email",
		Block:       1,
		Title:       "Qual é o seu e-mail?",
		Subtitle:    "Para manter contato e enviar seu progresso",
		Type:        TypeEmail,
		Placeholder: "seu@email.com",
	},
	{
		ID:          "phone",
		Block:       1,
		Title:       "Qual é o seu telefone?",
		Subtitle:    "Opcional, mas útil para suporte",
		Type:        TypePhone,
		Placeholder: "00000-0000",
	},
	{
		ID:       "sleep",
		Block:    2,
		Title:    "Com que frequência você se sente descansado(a) ao acordar?",
		Subtitle: "Seja honesto sobre seu descanso",
		Type:     TypeScale,
		Scale:    scaleFrequency,
	},
	{
		ID:       "relationships",
		Block:    2,
		Title:    "Qual o seu nível de satisfação com seus relacionamentos?",
		Subtitle: "Familiar, social, amoroso",
		Type:     TypeScale,
		Scale: []ScaleOption{
			{Value: 1, Label: "Muito Insatisfeito", Points: -10},
			{Value: 2, Label: "Insatisfeito", Points: -5},
			{Value: 3, Label: "Neutro", Points: 0},
			{Value: 4, Label: "Satisfeito", Points: 5},
			{Value: 5, Label: "Muito Satisfeito", Points: 10},
		},
	},
	{
		ID:       "motivation",
		Block:    2,
		Title:    "Com que frequência você se sente motivado(a) e com um propósito claro?",
		Subtitle: "Pense no seu dia a dia",
		Type:     TypeScale,
		Scale:    scaleFrequency,
	},
	{
		ID:       "stress",
		Block:    3,
		Title:    "Com que frequência você se sente sobrecarregado(a) ou incapaz de relaxar?",
		Subtitle: "Pense na última semana",
		Type:     TypeScale,
		Scale: []ScaleOption{
			{Value: 1, Label: "Diariamente", Points: -10},
			{Value: 2, Label: "Semanalmente", Points: -5},
			{Value: 3, Label: "Mensalmente", Points: 0},
			{Value: 4, Label: "Raramente", Points: 5},
			{Value: 5, Label: "Nunca", Points: 10},
		},
	},
	{
		ID:       "support",
		Block:    3,
		Title:    "Você tem pessoas em quem confia para compartilhar seus problemas?",
		Subtitle: "Rede de apoio é fundamental",
		Type:     TypeScale,
		Scale: []ScaleOption{
			{Value: 1, Label: "Não", Points: -10},
			{Value: 2, Label: "Poucas", Points: -5},
			{Value: 3, Label: "Algumas", Points: 0},
			{Value: 4, Label: "Sim, várias", Points: 5},
			{Value: 5, Label: "Sim, sempre", Points: 10},
		},
	},
	{
		ID:       BranchQuestionID,
		Block:    4,
		Title:    "Você sente que perde o controle sobre o uso de alguma substância ou comportamento?",
		Subtitle: "Ex: jogos, internet, álcool, compras",
		Type:     TypeYesNo,
	},
}

// habitQuestions is the conditional block appended when the branch answer
// is "yes". These questions never carry point deltas.
var habitQuestions = []Question{
	{
		ID:       "habit_type",
		Block:    5,
		Title:    "Qual o tipo de hábito?",
		Subtitle: "Selecione o que mais se aplica",
		Type:     TypeChoice,
		Choices: []ChoiceOption{
			{Value: "alcohol", Label: "Álcool"},
			{Value: "drugs", Label: "Drogas"},
			{Value: "gambling", Label: "Jogos/Apostas"},
			{Value: "internet", Label: "Internet/Redes Sociais"},
			{Value: "shopping", Label: "Compras Compulsivas"},
			{Value: "other", Label: "Outro"},
		},
	},
	{
		ID:       "habit_frequency",
		Block:    5,
		Title:    "Frequência de uso/prática?",
		Subtitle: "Com que frequência você pratica esse hábito?",
		Type:     TypeChoice,
		Choices: []ChoiceOption{
			{Value: "daily", Label: "Diariamente"},
			{Value: "weekly", Label: "Semanalmente"},
			{Value: "monthly", Label: "Mensalmente"},
		},
	},
	{
		ID:          "habit_monthly_spending",
		Block:       5,
		Title:       "Gasto mensal aproximado com o hábito?",
		Subtitle:    "Seja o mais preciso possível",
		Type:        TypeNumber,
		Placeholder: "Ex: 500.00",
	},
	{
		ID:       "habit_duration",
		Block:    5,
		Title:    "Há quanto tempo pratica o hábito?",
		Subtitle: "Isso nos ajuda a entender melhor",
		Type:     TypeChoice,
		Choices: []ChoiceOption{
			{Value: "less6months", Label: "Menos de 6 meses"},
			{Value: "6to12months", Label: "6 meses a 1 ano"},
			{Value: "moreThan1year", Label: "Mais de 1 ano"},
		},
	},
}

// BaseQuestions returns a copy of the fixed base sequence.
func BaseQuestions() []Question {
	out := make([]Question, len(baseQuestions))
	copy(out, baseQuestions)
	return out
}
