package handlers_test

import (
	"context"
	"time"

	"github.com/campusbot/UniBotAPI/internal/bot"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
)

// Function-field mocks so each test case overrides only what it needs.

type MockUserStore struct {
	OnCreateUser     func(ctx context.Context, user *commonModels.User) (string, error)
	OnGetUserByEmail func(ctx context.Context, email string) (*commonModels.User, error)
	OnTouchLastLogin func(ctx context.Context, id string) error
	OnListUsers      func(ctx context.Context) ([]commonModels.User, error)
	OnCountUsers     func(ctx context.Context) (commonModels.UserCounts, error)
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *commonModels.User) (string, error) {
	if m.OnCreateUser != nil {
		return m.OnCreateUser(ctx, user)
	}
	return "new-user-id", nil
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*commonModels.User, error) {
	if m.OnGetUserByEmail != nil {
		return m.OnGetUserByEmail(ctx, email)
	}
	return nil, nil
}

func (m *MockUserStore) TouchLastLogin(ctx context.Context, id string) error {
	if m.OnTouchLastLogin != nil {
		return m.OnTouchLastLogin(ctx, id)
	}
	return nil
}

func (m *MockUserStore) ListUsers(ctx context.Context) ([]commonModels.User, error) {
	if m.OnListUsers != nil {
		return m.OnListUsers(ctx)
	}
	return nil, nil
}

func (m *MockUserStore) CountUsers(ctx context.Context) (commonModels.UserCounts, error) {
	if m.OnCountUsers != nil {
		return m.OnCountUsers(ctx)
	}
	return commonModels.UserCounts{}, nil
}

func (m *MockUserStore) CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

type MockFAQStore struct {
	OnListFAQs  func(ctx context.Context, limit int64) ([]commonModels.FAQ, error)
	OnInsertFAQ func(ctx context.Context, faq *commonModels.FAQ) (string, error)
	OnDeleteFAQ func(ctx context.Context, id string) error
	OnFindFAQ   func(ctx context.Context, question string) (*commonModels.FAQ, error)
}

func (m *MockFAQStore) ListFAQs(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
	if m.OnListFAQs != nil {
		return m.OnListFAQs(ctx, limit)
	}
	return nil, nil
}

func (m *MockFAQStore) InsertFAQ(ctx context.Context, faq *commonModels.FAQ) (string, error) {
	if m.OnInsertFAQ != nil {
		return m.OnInsertFAQ(ctx, faq)
	}
	return "new-faq-id", nil
}

func (m *MockFAQStore) DeleteFAQ(ctx context.Context, id string) error {
	if m.OnDeleteFAQ != nil {
		return m.OnDeleteFAQ(ctx, id)
	}
	return nil
}

func (m *MockFAQStore) CountFAQs(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *MockFAQStore) FindFAQByQuestion(ctx context.Context, question string) (*commonModels.FAQ, error) {
	if m.OnFindFAQ != nil {
		return m.OnFindFAQ(ctx, question)
	}
	return nil, nil
}

type MockQueryStore struct {
	OnInsertQuery func(ctx context.Context, rec *commonModels.QueryRecord) (string, error)
	OnGetQuery    func(ctx context.Context, id string) (*commonModels.QueryRecord, error)
	OnMarkUsed    func(ctx context.Context, id, markedBy string) error
}

func (m *MockQueryStore) InsertQuery(ctx context.Context, rec *commonModels.QueryRecord) (string, error) {
	if m.OnInsertQuery != nil {
		return m.OnInsertQuery(ctx, rec)
	}
	return "new-query-id", nil
}

func (m *MockQueryStore) LogOrIncrement(ctx context.Context, rec *commonModels.QueryRecord) error {
	return nil
}

func (m *MockQueryStore) GetQuery(ctx context.Context, id string) (*commonModels.QueryRecord, error) {
	if m.OnGetQuery != nil {
		return m.OnGetQuery(ctx, id)
	}
	return nil, commonModels.ErrNotFound
}

func (m *MockQueryStore) ListQueries(ctx context.Context, limit, skip int64) ([]commonModels.QueryRecord, error) {
	return nil, nil
}

func (m *MockQueryStore) MarkUsed(ctx context.Context, id, markedBy string) error {
	if m.OnMarkUsed != nil {
		return m.OnMarkUsed(ctx, id, markedBy)
	}
	return nil
}

func (m *MockQueryStore) MarkReplied(ctx context.Context, id, repliedBy, faqID string) error {
	return nil
}

func (m *MockQueryStore) MarkConverted(ctx context.Context, question, faqID string) error {
	return nil
}

func (m *MockQueryStore) DeleteQuery(ctx context.Context, id string) error { return nil }

func (m *MockQueryStore) DismissFailed(ctx context.Context, question, dismissedBy string) (int64, error) {
	return 0, nil
}

func (m *MockQueryStore) Stats(ctx context.Context) (commonModels.QueryStats, error) {
	return commonModels.QueryStats{}, nil
}

func (m *MockQueryStore) TopUsers(ctx context.Context, limit int64) ([]commonModels.ActiveUser, error) {
	return nil, nil
}

type MockReviewStore struct {
	OnInsertReview    func(ctx context.Context, review *commonModels.Review) (string, error)
	OnGetReviewByUser func(ctx context.Context, userID string) (*commonModels.Review, error)
	OnGetReview       func(ctx context.Context, id string) (*commonModels.Review, error)
	OnDeleteReview    func(ctx context.Context, id string) error
}

func (m *MockReviewStore) InsertReview(ctx context.Context, review *commonModels.Review) (string, error) {
	if m.OnInsertReview != nil {
		return m.OnInsertReview(ctx, review)
	}
	return "new-review-id", nil
}

func (m *MockReviewStore) GetReviewByUser(ctx context.Context, userID string) (*commonModels.Review, error) {
	if m.OnGetReviewByUser != nil {
		return m.OnGetReviewByUser(ctx, userID)
	}
	return nil, nil
}

func (m *MockReviewStore) UpdateReviewByUser(ctx context.Context, userID string, rating int, feedback string) error {
	return nil
}

func (m *MockReviewStore) GetReview(ctx context.Context, id string) (*commonModels.Review, error) {
	if m.OnGetReview != nil {
		return m.OnGetReview(ctx, id)
	}
	return nil, commonModels.ErrNotFound
}

func (m *MockReviewStore) DeleteReview(ctx context.Context, id string) error {
	if m.OnDeleteReview != nil {
		return m.OnDeleteReview(ctx, id)
	}
	return nil
}

func (m *MockReviewStore) ListReviews(ctx context.Context, limit, skip int64, sortBy string, descending bool) ([]commonModels.Review, error) {
	return nil, nil
}

func (m *MockReviewStore) Stats(ctx context.Context) (commonModels.ReviewStats, error) {
	return commonModels.ReviewStats{}, nil
}

type MockQuestionnaireStore struct {
	OnInsert   func(ctx context.Context, q *commonModels.Questionnaire) (string, error)
	OnGet      func(ctx context.Context, id string) (*commonModels.Questionnaire, error)
	OnAnswer   func(ctx context.Context, id, answer, answeredBy string) error
	OnMarkRead func(ctx context.Context, id, userID string) error
	OnDelete   func(ctx context.Context, id, userID string, admin bool) error
}

func (m *MockQuestionnaireStore) Insert(ctx context.Context, q *commonModels.Questionnaire) (string, error) {
	if m.OnInsert != nil {
		return m.OnInsert(ctx, q)
	}
	return "new-questionnaire-id", nil
}

func (m *MockQuestionnaireStore) Get(ctx context.Context, id string) (*commonModels.Questionnaire, error) {
	if m.OnGet != nil {
		return m.OnGet(ctx, id)
	}
	return nil, commonModels.ErrNotFound
}

func (m *MockQuestionnaireStore) ListByUser(ctx context.Context, userID string) ([]commonModels.Questionnaire, error) {
	return nil, nil
}

func (m *MockQuestionnaireStore) ListByStatus(ctx context.Context, status string) ([]commonModels.Questionnaire, error) {
	return nil, nil
}

func (m *MockQuestionnaireStore) Answer(ctx context.Context, id, answer, answeredBy string) error {
	if m.OnAnswer != nil {
		return m.OnAnswer(ctx, id, answer, answeredBy)
	}
	return nil
}

func (m *MockQuestionnaireStore) MarkRead(ctx context.Context, id, userID string) error {
	if m.OnMarkRead != nil {
		return m.OnMarkRead(ctx, id, userID)
	}
	return nil
}

func (m *MockQuestionnaireStore) Delete(ctx context.Context, id, userID string, admin bool) error {
	if m.OnDelete != nil {
		return m.OnDelete(ctx, id, userID, admin)
	}
	return nil
}

func (m *MockQuestionnaireStore) Counts(ctx context.Context, userID string, admin bool) (commonModels.QuestionnaireCounts, error) {
	return commonModels.QuestionnaireCounts{}, nil
}

func (m *MockQuestionnaireStore) CountPending(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *MockQuestionnaireStore) CountUnreadAnswers(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

type MockBotService struct {
	OnAnswer func(ctx context.Context, question string) bot.Result
}

func (m *MockBotService) Answer(ctx context.Context, question string) bot.Result {
	if m.OnAnswer != nil {
		return m.OnAnswer(ctx, question)
	}
	return bot.Result{Answer: "mock answer", Answered: true}
}

func (m *MockBotService) RebuildIndex(ctx context.Context, job jobModel.Job) jobModel.Job {
	return job
}
