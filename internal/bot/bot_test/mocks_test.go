package bot_test

import (
	"context"

	"github.com/campusbot/UniBotAPI/internal/bot/vectorIndex"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

// MockIndex implements vectorIndex.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnSearch          func(ctx context.Context, vector []float32) (vectorIndex.Match, bool, error)
	OnGetCachedAnswer func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache     func(ctx context.Context, id string, vector []float32, answer string) error
	OnRebuildFAQs     func(ctx context.Context, faqs []commonModels.FAQ, vectors [][]float32) error
}

func (m *MockIndex) Search(ctx context.Context, v []float32) (vectorIndex.Match, bool, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v)
	}
	return vectorIndex.Match{Question: "default question", Answer: "default answer", Score: 0.9}, true, nil
}

func (m *MockIndex) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockIndex) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

func (m *MockIndex) RebuildFAQs(ctx context.Context, faqs []commonModels.FAQ, vectors [][]float32) error {
	if m.OnRebuildFAQs != nil {
		return m.OnRebuildFAQs(ctx, faqs, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return dummy vectors matching input size
	return make([][]float32, len(texts)), nil
}

// MockFAQStore implements commonModels.FAQStore
type MockFAQStore struct {
	OnListFAQs func(ctx context.Context, limit int64) ([]commonModels.FAQ, error)
}

func (m *MockFAQStore) ListFAQs(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
	if m.OnListFAQs != nil {
		return m.OnListFAQs(ctx, limit)
	}
	return []commonModels.FAQ{}, nil
}

func (m *MockFAQStore) InsertFAQ(ctx context.Context, faq *commonModels.FAQ) (string, error) {
	return "", nil
}

func (m *MockFAQStore) DeleteFAQ(ctx context.Context, id string) error {
	return nil
}

func (m *MockFAQStore) CountFAQs(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *MockFAQStore) FindFAQByQuestion(ctx context.Context, question string) (*commonModels.FAQ, error) {
	return nil, nil
}
