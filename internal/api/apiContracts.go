package api

// requests ---------------------

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required" example:"student"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type QuestionRequest struct {
	Question string `json:"question" validate:"required"`
}

type FAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Category string `json:"category,omitempty"`
}

type CollectQueryRequest struct {
	Query string `json:"query" validate:"required"`
}

type QueryReplyRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type LogQueryRequest struct {
	Question      string  `json:"question" validate:"required"`
	UserID        string  `json:"user_id"`
	ResponseFound bool    `json:"response_found"`
	Response      string  `json:"response"`
	ResponseTime  float64 `json:"response_time"`
}

type ConvertToFAQRequest struct {
	Question        string `json:"question" validate:"required"`
	SuggestedAnswer string `json:"suggested_answer"`
	Category        string `json:"category" example:"general"`
}

type ReviewRequest struct {
	Rating   int    `json:"rating" validate:"required" example:"5"`
	Feedback string `json:"feedback" validate:"required"`
}

type QuestionnaireRequest struct {
	Question string `json:"question" validate:"required"`
	Category string `json:"category" example:"general"`
	Priority string `json:"priority" example:"normal"`
	Context  string `json:"context,omitempty"`
}

type QuestionnaireReplyRequest struct {
	Answer   string `json:"answer" validate:"required"`
	AddToFAQ bool   `json:"add_to_faq"`
}

// responses ---------------------

type ErrorBody struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Bad Request"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	ExpiresAt   string `json:"expires_at"`
}

type TokenValidationResponse struct {
	Valid bool   `json:"valid"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type RebuildAcceptedResponse struct {
	JobID     string `json:"job_id"`
	StatusURL string `json:"status_url"`
}

type RebuildStatusResponse struct {
	State       string `json:"state"`
	TotalFAQs   int    `json:"total_faqs,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
	Message     string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Database    string `json:"database,omitempty"`
	Error       string `json:"error,omitempty"`
	Environment string `json:"environment"`
	Debug       bool   `json:"debug"`
}

type AnalyticsOverviewResponse struct {
	TotalUsers      int64   `json:"total_users"`
	ActiveUsers     int64   `json:"active_users"`
	SuccessRate     float64 `json:"success_rate"`
	AvgResponseTime float64 `json:"avg_response_time"`
	TotalFAQs       int64   `json:"total_faqs"`
}

type TopFAQ struct {
	Question string `json:"question"`
	Count    int64  `json:"count"`
	Category string `json:"category"`
}

type TopFAQsResponse struct {
	FAQs []TopFAQ `json:"faqs"`
}

type UserEngagement struct {
	DailyActive   int64 `json:"daily_active"`
	WeeklyActive  int64 `json:"weekly_active"`
	MonthlyActive int64 `json:"monthly_active"`
}

type UserActivityResponse struct {
	TotalUsers        int64            `json:"total_users"`
	NewUsersThisMonth int64            `json:"new_users_this_month"`
	MostActiveUsers   []ActiveUserItem `json:"most_active_users"`
	UserEngagement    UserEngagement   `json:"user_engagement"`
}

type ActiveUserItem struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Queries int64  `json:"queries"`
}

type ConvertToFAQResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	FAQID       string `json:"faq_id,omitempty"`
	NeedsAnswer bool   `json:"needs_answer,omitempty"`
}
