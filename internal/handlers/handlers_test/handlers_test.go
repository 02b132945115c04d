package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/bot"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/data/store"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
	"github.com/campusbot/UniBotAPI/internal/handlers"
	"github.com/campusbot/UniBotAPI/internal/job"
)

type testDeps struct {
	users          *MockUserStore
	faqs           *MockFAQStore
	queries        *MockQueryStore
	reviews        *MockReviewStore
	questionnaires *MockQuestionnaireStore
	bot            *MockBotService
	jobChannel     chan jobModel.Job
}

func newTestHandler(t *testing.T) (*handlers.Handler, *testDeps) {
	t.Helper()

	deps := &testDeps{
		users:          &MockUserStore{},
		faqs:           &MockFAQStore{},
		queries:        &MockQueryStore{},
		reviews:        &MockReviewStore{},
		questionnaires: &MockQuestionnaireStore{},
		bot:            &MockBotService{},
		jobChannel:     make(chan jobModel.Job, 16),
	}

	jobService := job.InitJobService(job.ServiceConfig{
		JobChannel:        deps.jobChannel,
		DispatcherChannel: make(chan bool, 16),
		JobStore:          store.InitInMemoryJobStore(),
	})

	h := handlers.New(handlers.Config{
		Users:          deps.users,
		FAQs:           deps.faqs,
		Queries:        deps.queries,
		Reviews:        deps.reviews,
		Questionnaires: deps.questionnaires,
		Bot:            deps.bot,
		Jobs:           jobService,
		Tokens:         auth.NewTokenManager("test-secret"),
		Settings:       &config.Settings{Environment: "test", Debug: true},
	})
	return h, deps
}

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
}

func asStudent(r *http.Request) *http.Request {
	claims := &auth.Claims{UserID: "student-1", Name: "Alice", Role: commonModels.RoleStudent}
	claims.Subject = "alice@university.edu"
	return r.WithContext(auth.WithClaims(r.Context(), claims))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error.Message
}

func TestRegister(t *testing.T) {
	existingUser := &commonModels.User{Email: "taken@university.edu"}

	testCases := []struct {
		name        string
		body        map[string]string
		existing    *commonModels.User
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "Success",
			body:       map[string]string{"name": "Alice", "email": "Alice@University.edu", "password": "hunter22", "role": "student"},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "Duplicate Email",
			body:        map[string]string{"name": "Bob", "email": "taken@university.edu", "password": "hunter22", "role": "student"},
			existing:    existingUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "User with this email already exists",
		},
		{
			name:        "Bad Role",
			body:        map[string]string{"name": "Eve", "email": "eve@university.edu", "password": "hunter22", "role": "superuser"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Role must be either 'student' or 'admin'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.users.OnGetUserByEmail = func(ctx context.Context, email string) (*commonModels.User, error) {
				return tc.existing, nil
			}

			var gotEmail string
			deps.users.OnCreateUser = func(ctx context.Context, user *commonModels.User) (string, error) {
				gotEmail = user.Email
				return "id-123", nil
			}

			rec := httptest.NewRecorder()
			h.Register(rec, postJSON(t, "/register", tc.body))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantMessage != "" {
				if got := decodeError(t, rec); got != tc.wantMessage {
					t.Errorf("error message = %q, want %q", got, tc.wantMessage)
				}
			}
			if tc.wantStatus == http.StatusCreated && gotEmail != "alice@university.edu" {
				t.Errorf("stored email = %q, want lowercased", gotEmail)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	activeUser := &commonModels.User{
		ID:       primitive.NewObjectID(),
		Name:     "Alice",
		Email:    "alice@university.edu",
		Password: hash,
		Role:     commonModels.RoleStudent,
		IsActive: true,
	}
	inactiveUser := &commonModels.User{
		ID:       primitive.NewObjectID(),
		Email:    "gone@university.edu",
		Password: hash,
		IsActive: false,
	}

	testCases := []struct {
		name        string
		email       string
		password    string
		user        *commonModels.User
		wantStatus  int
		wantMessage string
	}{
		{"Success", "alice@university.edu", "correct-horse", activeUser, http.StatusOK, ""},
		{"Wrong Password", "alice@university.edu", "battery-staple", activeUser, http.StatusUnauthorized, "Invalid email or password"},
		{"Unknown Email", "nobody@university.edu", "correct-horse", nil, http.StatusUnauthorized, "Invalid email or password"},
		{"Inactive Account", "gone@university.edu", "correct-horse", inactiveUser, http.StatusUnauthorized, "Account is inactive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.users.OnGetUserByEmail = func(ctx context.Context, email string) (*commonModels.User, error) {
				return tc.user, nil
			}

			rec := httptest.NewRecorder()
			h.Login(rec, postJSON(t, "/login", map[string]string{"email": tc.email, "password": tc.password}))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantMessage != "" {
				if got := decodeError(t, rec); got != tc.wantMessage {
					t.Errorf("error message = %q, want %q", got, tc.wantMessage)
				}
				return
			}

			var resp struct {
				AccessToken string `json:"access_token"`
				TokenType   string `json:"token_type"`
				Role        string `json:"role"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode login response: %v", err)
			}
			if resp.AccessToken == "" || resp.TokenType != "bearer" || resp.Role != commonModels.RoleStudent {
				t.Errorf("unexpected login response: %+v", resp)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	t.Run("Answer And Async Query Log", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.bot.OnAnswer = func(ctx context.Context, question string) bot.Result {
			return bot.Result{Answer: "The library opens at 8am.", Answered: true, Score: 0.91}
		}

		rec := httptest.NewRecorder()
		req := postJSON(t, "/query", map[string]string{"question": "When does the library open?"})
		h.Query(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		select {
		case queued := <-deps.jobChannel:
			if queued.JobType != jobModel.JobTypeQueryLog {
				t.Errorf("queued job type = %s, want %s", queued.JobType, jobModel.JobTypeQueryLog)
			}
			if queued.Payload.Query == nil || queued.Payload.Query.UserName != "Anonymous" {
				t.Errorf("queued record should default to Anonymous: %+v", queued.Payload.Query)
			}
		default:
			t.Fatal("no query log job was enqueued")
		}
	})

	t.Run("Fallback Still Returns 200", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.bot.OnAnswer = func(ctx context.Context, question string) bot.Result {
			return bot.Result{Answer: config.FallbackAnswer, Answered: false}
		}

		rec := httptest.NewRecorder()
		h.Query(rec, postJSON(t, "/query", map[string]string{"question": "Something the index has never seen"}))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 even on fallback", rec.Code)
		}
	})

	t.Run("Empty Question Rejected", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.Query(rec, postJSON(t, "/query", map[string]string{"question": "   "}))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestDeleteFAQ(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.faqs.OnDeleteFAQ = func(ctx context.Context, id string) error {
		return commonModels.ErrNotFound
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/faqs/missing-id", nil)
	h.DeleteFAQ(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec); got != "FAQ not found" {
		t.Errorf("error message = %q, want %q", got, "FAQ not found")
	}
}

func TestCreateReview(t *testing.T) {
	testCases := []struct {
		name        string
		rating      int
		feedback    string
		existing    *commonModels.Review
		wantStatus  int
		wantMessage string
	}{
		{"Success", 5, "Great bot", nil, http.StatusCreated, ""},
		{"Rating Out Of Range", 6, "Too good", nil, http.StatusBadRequest, "Rating must be between 1 and 5"},
		{"Duplicate", 4, "Again", &commonModels.Review{UserID: "student-1"}, http.StatusBadRequest, "You have already submitted a review"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.reviews.OnGetReviewByUser = func(ctx context.Context, userID string) (*commonModels.Review, error) {
				return tc.existing, nil
			}

			rec := httptest.NewRecorder()
			req := asStudent(postJSON(t, "/reviews", map[string]any{"rating": tc.rating, "feedback": tc.feedback}))
			h.CreateReview(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantMessage != "" {
				if got := decodeError(t, rec); got != tc.wantMessage {
					t.Errorf("error message = %q, want %q", got, tc.wantMessage)
				}
			}
		})
	}
}

func TestCollectQuery_AlwaysSucceeds(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.queries.OnInsertQuery = func(ctx context.Context, rec *commonModels.QueryRecord) (string, error) {
		return "", errors.New("mongo is down")
	}

	rec := httptest.NewRecorder()
	h.CollectQuery(rec, postJSON(t, "/collect-query", map[string]string{"query": "how do I enroll"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite store failure", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("collect-query must always report success")
	}
}

func TestDeleteQuestionnaire(t *testing.T) {
	t.Run("Owner Scope Passed To Store", func(t *testing.T) {
		h, deps := newTestHandler(t)

		var gotUserID string
		var gotAdmin bool
		deps.questionnaires.OnDelete = func(ctx context.Context, id, userID string, admin bool) error {
			gotUserID, gotAdmin = userID, admin
			return nil
		}

		rec := httptest.NewRecorder()
		req := asStudent(httptest.NewRequest(http.MethodDelete, "/questionnaires/q-1", nil))
		h.DeleteQuestionnaire(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotUserID != "student-1" || gotAdmin {
			t.Errorf("delete scoped to (%q, admin=%v), want owner student-1, admin=false", gotUserID, gotAdmin)
		}
	})

	t.Run("Not Owned Reports Not Found", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.questionnaires.OnDelete = func(ctx context.Context, id, userID string, admin bool) error {
			return commonModels.ErrNotFound
		}

		rec := httptest.NewRecorder()
		req := asStudent(httptest.NewRequest(http.MethodDelete, "/questionnaires/someone-elses", nil))
		h.DeleteQuestionnaire(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if got := decodeError(t, rec); got != "Questionnaire not found or access denied" {
			t.Errorf("error message = %q", got)
		}
	})
}

func TestSubmitQuestionnaire_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := asStudent(postJSON(t, "/questionnaire", map[string]string{"question": "too short"}))
	h.SubmitQuestionnaire(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a sub-10-char question", rec.Code)
	}
}
