package commonModels

import (
	"context"
	"time"
)

type UserCounts struct {
	Total    int64 `json:"total_users"`
	Active   int64 `json:"active_users"`
	Admins   int64 `json:"admin_users"`
	Students int64 `json:"student_users"`
}

type ActiveUser struct {
	UserID  string `bson:"_id" json:"user_id"`
	Name    string `bson:"user_name" json:"name"`
	Queries int64  `bson:"queries" json:"queries"`
}

type QueryStats struct {
	Total           int64   `json:"total_queries"`
	Answered        int64   `json:"answered_queries"`
	UsedForTraining int64   `json:"used_for_training"`
	Recent          int64   `json:"recent_queries"`
	AvgResponseTime float64 `json:"avg_response_time"`
}

type ReviewStats struct {
	TotalReviews       int64          `json:"total_reviews"`
	AverageRating      float64        `json:"average_rating"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

type QuestionnaireCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Answered int64 `json:"answered"`
}

type UserStore interface {
	CreateUser(ctx context.Context, user *User) (string, error)
	// GetUserByEmail returns (nil, nil) when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	TouchLastLogin(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]User, error)
	CountUsers(ctx context.Context) (UserCounts, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type FAQStore interface {
	// ListFAQs returns at most limit entries; limit <= 0 means all.
	ListFAQs(ctx context.Context, limit int64) ([]FAQ, error)
	InsertFAQ(ctx context.Context, faq *FAQ) (string, error)
	DeleteFAQ(ctx context.Context, id string) error
	CountFAQs(ctx context.Context) (int64, error)
	// FindFAQByQuestion is a case-insensitive match; (nil, nil) when absent.
	FindFAQByQuestion(ctx context.Context, question string) (*FAQ, error)
}

type QueryStore interface {
	InsertQuery(ctx context.Context, rec *QueryRecord) (string, error)
	// LogOrIncrement inserts rec unless an unanswered record with the same
	// question and user exists, in which case attempts is incremented.
	LogOrIncrement(ctx context.Context, rec *QueryRecord) error
	GetQuery(ctx context.Context, id string) (*QueryRecord, error)
	ListQueries(ctx context.Context, limit, skip int64) ([]QueryRecord, error)
	MarkUsed(ctx context.Context, id, markedBy string) error
	MarkReplied(ctx context.Context, id, repliedBy, faqID string) error
	MarkConverted(ctx context.Context, question, faqID string) error
	DeleteQuery(ctx context.Context, id string) error
	DismissFailed(ctx context.Context, question, dismissedBy string) (int64, error)
	Stats(ctx context.Context) (QueryStats, error)
	TopUsers(ctx context.Context, limit int64) ([]ActiveUser, error)
}

type ReviewStore interface {
	InsertReview(ctx context.Context, review *Review) (string, error)
	// GetReviewByUser returns (nil, nil) when the user has no review.
	GetReviewByUser(ctx context.Context, userID string) (*Review, error)
	UpdateReviewByUser(ctx context.Context, userID string, rating int, feedback string) error
	GetReview(ctx context.Context, id string) (*Review, error)
	DeleteReview(ctx context.Context, id string) error
	ListReviews(ctx context.Context, limit, skip int64, sortBy string, descending bool) ([]Review, error)
	Stats(ctx context.Context) (ReviewStats, error)
}

type QuestionnaireStore interface {
	Insert(ctx context.Context, q *Questionnaire) (string, error)
	Get(ctx context.Context, id string) (*Questionnaire, error)
	ListByUser(ctx context.Context, userID string) ([]Questionnaire, error)
	// ListByStatus with an empty status lists everything.
	ListByStatus(ctx context.Context, status string) ([]Questionnaire, error)
	Answer(ctx context.Context, id, answer, answeredBy string) error
	MarkRead(ctx context.Context, id, userID string) error
	// Delete removes the questionnaire; non-admins only match their own.
	Delete(ctx context.Context, id, userID string, admin bool) error
	Counts(ctx context.Context, userID string, admin bool) (QuestionnaireCounts, error)
	CountPending(ctx context.Context) (int64, error)
	CountUnreadAnswers(ctx context.Context, userID string) (int64, error)
}
