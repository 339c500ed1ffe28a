package models

type QuestionType string

const (
	QuestionNumber QuestionType = "number"
	QuestionChoice QuestionType = "choice"
)

type QuestionOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Question struct {
	Key         string           `json:"key"`
	Label       string           `json:"label"`
	Type        QuestionType     `json:"type"`
	Placeholder string           `json:"placeholder,omitempty"`
	Options     []QuestionOption `json:"options,omitempty"`
}

var jobSeekerQuestions = []Question{
	{
		Key:         "desiredSalary",
		Label:       "1. Какую зарплату вы ожидаете? (руб.)",
		Type:        QuestionNumber,
		Placeholder: "Введите сумму",
	},
	{
		Key:   "relocation",
		Label: "2. Готовы ли вы к переезду в другой город?",
		Type:  QuestionChoice,
		Options: []QuestionOption{
			{Label: "Да, готов", Value: "yes"},
			{Label: "Нет, не готов", Value: "no"},
			{Label: "Рассмотрю предложения", Value: "maybe"},
		},
	},
	{
		Key:   "workFormat",
		Label: "3. Какой формат работы предпочитаете?",
		Type:  QuestionChoice,
		Options: []QuestionOption{
			{Label: "Офис", Value: "office"},
			{Label: "Удалённо", Value: "remote"},
			{Label: "Гибридный", Value: "hybrid"},
		},
	},
	{
		Key:   "workSchedule",
		Label: "4. Какой график работы вас интересует?",
		Type:  QuestionChoice,
		Options: []QuestionOption{
			{Label: "Полный день", Value: "full"},
			{Label: "Неполный день", Value: "part"},
			{Label: "Гибкий график", Value: "flexible"},
			{Label: "Сменный график", Value: "shift"},
		},
	},
}

var recruiterQuestions = []Question{
	{
		Key:         "offeredSalary",
		Label:       "1. Какую зарплату предлагаете? (руб.)",
		Type:        QuestionNumber,
		Placeholder: "Введите сумму",
	},
	{
		Key:   "candidateRelocation",
		Label: "2. Готовы рассматривать кандидатов из других городов?",
		Type:  QuestionChoice,
		Options: []QuestionOption{
			{Label: "Да", Value: "yes"},
			{Label: "Только локальные", Value: "no"},
			{Label: "С компенсацией переезда", Value: "relocation"},
		},
	},
	{
		Key:   "offeredWorkFormat",
		Label: "3. Какой формат работы предлагаете?",
		Type:  QuestionChoice,
		Options: []QuestionOption{
			{Label: "Офис", Value: "office"},
			{Label: "Удалённо", Value: "remote"},
			{Label: "Гибридный", Value: "hybrid"},
		},
	},
	{
		Key:   "offeredWorkSchedule",
		Label: "4. Какой график работы предлагаете?",
		Type:  QuestionChoice,
		Options: []QuestionOption{
			{Label: "Полный день", Value: "full"},
			{Label: "Неполный день", Value: "part"},
			{Label: "Гибкий график", Value: "flexible"},
			{Label: "Сменный график", Value: "shift"},
		},
	},
}

// QuestionsFor returns the questionnaire definition for the role.
func QuestionsFor(role Role) []Question {
	if role == RoleRecruiter {
		return recruiterQuestions
	}
	return jobSeekerQuestions
}

// RequiredKeys lists every question key the role must answer before the
// questionnaire can be left.
func RequiredKeys(role Role) []string {
	questions := QuestionsFor(role)
	keys := make([]string, 0, len(questions))
	for _, q := range questions {
		keys = append(keys, q.Key)
	}
	return keys
}
