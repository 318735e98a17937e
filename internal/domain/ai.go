package domain

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type AIChatRequest struct {
	Message string        `json:"message" validate:"required,max=2000"`
	History []ChatMessage `json:"history" validate:"max=20,dive"`
}

type WorkoutPlanRequest struct {
	Goal        string   `json:"goal" validate:"required,oneof=lose_weight gain_muscle endurance strength general_fitness"`
	Level       string   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	DaysPerWeek int      `json:"daysPerWeek" validate:"required,min=1,max=7"`
	Equipment   []string `json:"equipment" validate:"max=20,dive,max=50"`
	Limitations string   `json:"limitations" validate:"max=500"`
}

type NutritionRequest struct {
	Question     string   `json:"question" validate:"required,max=1000"`
	Goal         string   `json:"goal" validate:"omitempty,max=100"`
	Restrictions []string `json:"restrictions" validate:"max=20,dive,max=50"`
}

type AIResponse struct {
	Response   string `json:"response"`
	Model      string `json:"model"`
	TokensUsed int64  `json:"tokensUsed"`
}
