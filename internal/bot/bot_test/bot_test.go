package bot_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/campusbot/UniBotAPI/internal/bot"
	"github.com/campusbot/UniBotAPI/internal/bot/vectorIndex"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
)

func TestAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, i *MockIndex)
		expectedAnswer string
		expectAnswered bool
		expectCached   bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, i *MockIndex) {
				i.OnSearch = func(ctx context.Context, v []float32) (vectorIndex.Match, bool, error) {
					return vectorIndex.Match{Question: "library hours?", Answer: "open 8-22", Score: 0.91}, true, nil
				}
			},
			expectedAnswer: "open 8-22",
			expectAnswered: true,
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, i *MockIndex) {
				i.OnGetCachedAnswer = func(ctx context.Context, v []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
			},
			expectedAnswer: "cached answer",
			expectAnswered: true,
			expectCached:   true,
		},
		{
			name: "Fallback_Below_Cutoff",
			setupMocks: func(e *MockEmbedder, i *MockIndex) {
				i.OnSearch = func(ctx context.Context, v []float32) (vectorIndex.Match, bool, error) {
					return vectorIndex.Match{Question: "something else", Answer: "wrong topic", Score: 0.42}, true, nil
				}
			},
			expectedAnswer: config.FallbackAnswer,
			expectAnswered: false,
		},
		{
			name: "Fallback_Empty_Index",
			setupMocks: func(e *MockEmbedder, i *MockIndex) {
				i.OnSearch = func(ctx context.Context, v []float32) (vectorIndex.Match, bool, error) {
					return vectorIndex.Match{}, false, nil
				}
			},
			expectedAnswer: config.FallbackAnswer,
			expectAnswered: false,
		},
		{
			name: "Fallback_Embedding_Failure",
			setupMocks: func(e *MockEmbedder, i *MockIndex) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedAnswer: config.FallbackAnswer,
			expectAnswered: false,
		},
		{
			name: "Fallback_Vector_Search_Failure",
			setupMocks: func(e *MockEmbedder, i *MockIndex) {
				i.OnSearch = func(ctx context.Context, v []float32) (vectorIndex.Match, bool, error) {
					return vectorIndex.Match{}, false, errors.New("db timeout")
				}
			},
			expectedAnswer: config.FallbackAnswer,
			expectAnswered: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mIndex := &MockIndex{}

			tt.setupMocks(mEmbed, mIndex)

			s := bot.NewService(mIndex, mEmbed, &MockFAQStore{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			result := s.Answer(ctx, "when is the library open?")

			if result.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %q, want %q", result.Answer, tt.expectedAnswer)
			}
			if result.Answered != tt.expectAnswered {
				t.Errorf("Answered got %v, want %v", result.Answered, tt.expectAnswered)
			}
			if result.Cached != tt.expectCached {
				t.Errorf("Cached got %v, want %v", result.Cached, tt.expectCached)
			}
		})
	}
}

func TestRebuildIndex_Scenarios(t *testing.T) {
	sampleFAQs := []commonModels.FAQ{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}

	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, i *MockIndex, f *MockFAQStore)
		expectedStep   jobModel.InternalStatus
		expectedStatus jobModel.JobStatus
		expectedCount  int
		expectErr      bool
	}{
		{
			name: "Rebuild_Success",
			setupMocks: func(e *MockEmbedder, i *MockIndex, f *MockFAQStore) {
				f.OnListFAQs = func(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
					return sampleFAQs, nil
				}
			},
			expectedStep:  jobModel.Complete,
			expectedCount: 2,
		},
		{
			name: "Rebuild_Empty_FAQ_Set",
			setupMocks: func(e *MockEmbedder, i *MockIndex, f *MockFAQStore) {
				f.OnListFAQs = func(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
					return []commonModels.FAQ{}, nil
				}
			},
			expectedStep:  jobModel.Complete,
			expectedCount: 0,
		},
		{
			name: "Failure_FAQ_Fetch",
			setupMocks: func(e *MockEmbedder, i *MockIndex, f *MockFAQStore) {
				f.OnListFAQs = func(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
					return nil, errors.New("mongo down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectErr:      true,
		},
		{
			name: "Failure_Batch_Embedding",
			setupMocks: func(e *MockEmbedder, i *MockIndex, f *MockFAQStore) {
				f.OnListFAQs = func(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
					return sampleFAQs, nil
				}
				e.OnBatchEmbedding = func(ctx context.Context, texts []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectErr:      true,
		},
		{
			name: "Failure_Index_Upsert",
			setupMocks: func(e *MockEmbedder, i *MockIndex, f *MockFAQStore) {
				f.OnListFAQs = func(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
					return sampleFAQs, nil
				}
				i.OnRebuildFAQs = func(ctx context.Context, faqs []commonModels.FAQ, vectors [][]float32) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mIndex := &MockIndex{}
			mFAQs := &MockFAQStore{}

			tt.setupMocks(mEmbed, mIndex, mFAQs)

			s := bot.NewService(mIndex, mEmbed, mFAQs)

			ctx := context.Background()
			job := jobModel.Job{
				Id:      "rebuild-job",
				TraceId: "test-trace",
				JobType: jobModel.JobTypeRebuild,
			}

			result := s.RebuildIndex(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectErr && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
			}
			if !tt.expectErr {
				if result.CurrentStep != tt.expectedStep {
					t.Errorf("Step got %v, want %v", result.CurrentStep, tt.expectedStep)
				}
				if result.Payload.FAQCount != tt.expectedCount {
					t.Errorf("FAQCount got %d, want %d", result.Payload.FAQCount, tt.expectedCount)
				}
			}
		})
	}
}
