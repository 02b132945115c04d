package commonModels

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by stores when a lookup by id matches nothing.
var ErrNotFound = errors.New("document not found")

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastLogin time.Time          `bson:"last_login,omitempty" json:"last_login,omitempty"`
}

// FAQ source values record how the entry entered the knowledge base.
const (
	FAQSourceManual        = "manual_add"
	FAQSourceQueryReply    = "query_reply"
	FAQSourceFailedQuery   = "failed_query"
	FAQSourceQuestionnaire = "questionnaire"
)

type FAQ struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer" json:"answer"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Source    string             `bson:"source,omitempty" json:"source,omitempty"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// QueryRecord is one chatbot question as seen by the analytics pipeline.
// Unanswered records accumulate Attempts instead of duplicating.
type QueryRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question        string             `bson:"question" json:"question"`
	UserID          string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	UserName        string             `bson:"user_name" json:"user_name"`
	UserEmail       string             `bson:"user_email" json:"user_email"`
	UserAgent       string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	IPAddress       string             `bson:"ip_address,omitempty" json:"-"`
	Answered        bool               `bson:"answered" json:"answered"`
	Answer          string             `bson:"answer,omitempty" json:"answer,omitempty"`
	ResponseTime    float64            `bson:"response_time,omitempty" json:"response_time,omitempty"`
	Attempts        int                `bson:"attempts" json:"attempts"`
	UsedForTraining bool               `bson:"used_for_training" json:"used_for_training"`
	MarkedBy        string             `bson:"marked_by,omitempty" json:"-"`
	MarkedAt        time.Time          `bson:"marked_at,omitempty" json:"-"`
	RepliedBy       string             `bson:"replied_by,omitempty" json:"-"`
	RepliedAt       time.Time          `bson:"replied_at,omitempty" json:"-"`
	FAQID           string             `bson:"faq_id,omitempty" json:"faq_id,omitempty"`
	Dismissed       bool               `bson:"dismissed,omitempty" json:"-"`
	DismissedBy     string             `bson:"dismissed_by,omitempty" json:"-"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"-"`
	UserName  string             `bson:"user_name" json:"user_name"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	Rating    int                `bson:"rating" json:"rating"`
	Feedback  string             `bson:"feedback" json:"feedback"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

const (
	QuestionnairePending  = "pending"
	QuestionnaireAnswered = "answered"
)

type Questionnaire struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question     string             `bson:"question" json:"question"`
	Category     string             `bson:"category" json:"category"`
	Priority     string             `bson:"priority" json:"priority"`
	Context      string             `bson:"context,omitempty" json:"context,omitempty"`
	Status       string             `bson:"status" json:"status"`
	UserID       string             `bson:"user_id" json:"-"`
	UserName     string             `bson:"user_name" json:"user_name"`
	UserEmail    string             `bson:"user_email" json:"user_email"`
	AdminAnswer  string             `bson:"admin_answer,omitempty" json:"admin_answer,omitempty"`
	AnsweredBy   string             `bson:"answered_by,omitempty" json:"answered_by,omitempty"`
	AnsweredAt   time.Time          `bson:"answered_at,omitempty" json:"answered_at,omitempty"`
	IsReadByUser bool               `bson:"is_read_by_user" json:"is_read_by_user"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
