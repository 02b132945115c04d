package vectorIndex

import (
	"context"

	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

// Match is the best FAQ hit for a query vector.
type Match struct {
	FAQID    string
	Question string
	Answer   string
	Score    float32
}

type Index interface {
	// Search returns the closest FAQ; found is false when the index is empty.
	Search(ctx context.Context, vector []float32) (Match, bool, error)

	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error

	// RebuildFAQs replaces the whole index with the given FAQ set.
	RebuildFAQs(ctx context.Context, faqs []commonModels.FAQ, vectors [][]float32) error
}
