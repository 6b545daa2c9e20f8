package evaluation

import (
	"context"

	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/retrieval"
	"github.com/samber/lo"
)

// RetrievalCase is a query together with the texts a good retriever is
// expected to return for it.
type RetrievalCase struct {
	Query    string
	Expected []string
}

type retrieverTester struct {
	retriever retrieval.Retriever
}

func NewRetrieverTester(retriever retrieval.Retriever) Tester[RetrievalCase, []embeddings.TextSegment] {
	return &retrieverTester{
		retriever: retriever,
	}
}

func (t *retrieverTester) Test(ctx context.Context, test RetrievalCase) ([]embeddings.TextSegment, error) {
	return t.retriever.FindRelevant(ctx, test.Query)
}

// RecallAtK scores the share of expected texts found among the first k
// segments. A segment matches an expected entry by text or by source. Cases
// without expectations score 1, failed retrievals score 0.
func RecallAtK(k int) GoodnessFunction[RetrievalCase, []embeddings.TextSegment] {
	return func(test RetrievalCase, segments []embeddings.TextSegment, err error) float64 {
		if err != nil {
			return 0
		}
		if len(test.Expected) == 0 {
			return 1
		}
		if k >= 0 && len(segments) > k {
			segments = segments[:k]
		}
		found := lo.CountBy(lo.Uniq(test.Expected), func(expected string) bool {
			return lo.ContainsBy(segments, func(segment embeddings.TextSegment) bool {
				source, _ := segment.Get(embeddings.MetadataSource)
				return segment.Text == expected || source == expected
			})
		})
		return float64(found) / float64(len(lo.Uniq(test.Expected)))
	}
}
