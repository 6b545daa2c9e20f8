package evaluation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/retrieval/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTester struct {
	calls atomic.Int32
}

func (e *echoTester) Test(_ context.Context, test string) (string, error) {
	e.calls.Add(1)
	if test == "" {
		return "", errors.New("empty input")
	}
	return test, nil
}

func lengthGoodness(_ string, output string, err error) float64 {
	if err != nil {
		return -1
	}
	return float64(len(output))
}

func TestEvaluator(t *testing.T) {
	testCases := []struct {
		name        string
		repetitions int
		testPack    []string
		want        []float64
	}{
		{
			name:        "single repetition",
			repetitions: 1,
			testPack:    []string{"Hello", "Hello Hello", "Hello Hello Hello Hello"},
			want:        []float64{5, 11, 23},
		},
		{
			name:        "five repetitions",
			repetitions: 5,
			testPack:    []string{"Hello", "Hello Hello", "Hello Hello Hello Hello"},
			want:        []float64{5, 11, 23},
		},
		{
			name:        "tester errors reach the goodness function",
			repetitions: 2,
			testPack:    []string{"Hello", ""},
			want:        []float64{5, -1},
		},
		{
			name:        "zero repetitions runs once",
			repetitions: 0,
			testPack:    []string{"Hi"},
			want:        []float64{2},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tester := &echoTester{}
			evaluator := NewEvaluator[string, string](tester, &Options[string, string]{
				GoodnessFunction: lengthGoodness,
				Repetitions:      tc.repetitions,
			})

			got, err := evaluator.Evaluate(context.Background(), tc.testPack)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, int32(max(tc.repetitions, 1)*len(tc.testPack)), tester.calls.Load())
		})
	}
}

func TestEvaluatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	evaluator := NewEvaluator[string, string](&echoTester{}, &Options[string, string]{
		GoodnessFunction: lengthGoodness,
		Repetitions:      3,
	})
	_, err := evaluator.Evaluate(ctx, []string{"Hello"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvaluatorRequiresGoodnessFunction(t *testing.T) {
	evaluator := NewEvaluator[string, string](&echoTester{}, &Options[string, string]{Repetitions: 1})
	_, err := evaluator.Evaluate(context.Background(), []string{"Hello"})
	require.Error(t, err)
}

func TestRecallAtK(t *testing.T) {
	segments := []embeddings.TextSegment{
		embeddings.NewTextSegment("first", map[string]string{embeddings.MetadataSource: "a.md"}),
		embeddings.NewTextSegment("second", map[string]string{embeddings.MetadataSource: "b.md"}),
		embeddings.NewTextSegment("third", nil),
	}
	testCases := []struct {
		name     string
		k        int
		expected []string
		err      error
		want     float64
	}{
		{name: "all found by text", k: 3, expected: []string{"first", "third"}, want: 1},
		{name: "found by source", k: 3, expected: []string{"b.md"}, want: 1},
		{name: "cut off by k", k: 1, expected: []string{"first", "second"}, want: 0.5},
		{name: "nothing found", k: 3, expected: []string{"fourth"}, want: 0},
		{name: "duplicates count once", k: 3, expected: []string{"first", "first", "fourth"}, want: 0.5},
		{name: "no expectations", k: 3, want: 1},
		{name: "retrieval failed", k: 3, expected: []string{"first"}, err: errors.New("boom"), want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := RecallAtK(tc.k)(RetrievalCase{Query: "q", Expected: tc.expected}, segments, tc.err)
			assert.InDelta(t, tc.want, score, 1e-9)
		})
	}
}

func TestRetrieverEvaluation(t *testing.T) {
	ctrl := gomock.NewController(t)
	retriever := mocks.NewMockRetriever(ctrl)
	retriever.EXPECT().FindRelevant(gomock.Any(), "reset password").Return([]embeddings.TextSegment{
		embeddings.NewTextSegment("Open settings and click reset.", nil),
	}, nil).Times(2)
	retriever.EXPECT().FindRelevant(gomock.Any(), "billing").Return(nil, errors.New("timeout")).Times(2)

	evaluator := NewEvaluator(NewRetrieverTester(retriever), &Options[RetrievalCase, []embeddings.TextSegment]{
		GoodnessFunction: RecallAtK(10),
		Repetitions:      2,
	})
	report, err := evaluator.Evaluate(context.Background(), []RetrievalCase{
		{Query: "reset password", Expected: []string{"Open settings and click reset."}},
		{Query: "billing", Expected: []string{"invoice.md"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, report)
}
