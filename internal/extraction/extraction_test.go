package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/studyloop/studyloop/internal/inference"
	mock_inference "github.com/studyloop/studyloop/internal/mocks/inference"
	"github.com/studyloop/studyloop/internal/planner"
)

func TestStubExtractor_Extract(t *testing.T) {
	for _, tc := range []struct {
		name         string
		documentText string
		wantNames    []string
	}{
		{
			name: "headings",
			documentText: "Chapter 1: Limits and Continuity\n" +
				"Some prose about the chapter.\n" +
				"Unit 2 - Derivatives\n" +
				"Week 3: Integrals\n",
			wantNames: []string{"Limits and Continuity", "Derivatives", "Integrals"},
		},
		{
			name: "bullets",
			documentText: "Topics to cover:\n" +
				"- Algebra\n" +
				"* Geometry\n" +
				"1. Trigonometry\n" +
				"2) Statistics\n",
			wantNames: []string{"Algebra", "Geometry", "Trigonometry", "Statistics"},
		},
		{
			name: "long bullets are skipped as prose",
			documentText: "- Algebra\n" +
				"- This bullet point is far too long to plausibly be the name of a study topic in a syllabus\n",
			wantNames: []string{"Algebra"},
		},
		{
			name:         "duplicates collapse case insensitively",
			documentText: "- Algebra\n- ALGEBRA\n- algebra\n- Geometry\n",
			wantNames:    []string{"Algebra", "Geometry"},
		},
		{
			name:         "no structure falls back to general review",
			documentText: "Just a paragraph of prose with no headings or lists.",
			wantNames:    []string{planner.FallbackTopicName},
		},
		{
			name:         "empty document falls back to general review",
			documentText: "",
			wantNames:    []string{planner.FallbackTopicName},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			topics, err := NewStubExtractor().Extract(context.Background(), tc.documentText)
			require.NoError(t, err)

			names := make([]string, 0, len(topics))
			for _, topic := range topics {
				names = append(names, topic.Name)
				assert.Equal(t, 5, topic.DifficultyScore)
				assert.Equal(t, planner.PriorityMedium, topic.Priority)
				assert.Equal(t, 3.0, topic.EstimatedHours)
			}
			assert.Equal(t, tc.wantNames, names)
		})
	}
}

func TestStubExtractor_Extract_MaxTopics(t *testing.T) {
	documentText := ""
	for _, name := range []string{"A", "B", "C", "D"} {
		documentText += "- " + name + "\n"
	}

	extractor := &StubExtractor{MaxTopics: 2}
	topics, err := extractor.Extract(context.Background(), documentText)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "A", topics[0].Name)
	assert.Equal(t, "B", topics[1].Name)
}

func TestLLMExtractor_Extract(t *testing.T) {
	for _, tc := range []struct {
		name         string
		documentText string
		setup        func(client *mock_inference.MockClient)
		want         []planner.Topic
	}{
		{
			name:         "model topics are converted",
			documentText: "calculus syllabus",
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().
					ExtractTopics(gomock.Any(), inference.ExtractTopicsRequest{
						DocumentText: "calculus syllabus",
						MaxTopics:    DefaultMaxTopics,
					}).
					Return(inference.ExtractTopicsResponse{
						Topics: []inference.ExtractedTopic{
							{Name: "Limits", DifficultyScore: 6, Priority: "high", EstimatedHours: 4, Category: "calculus"},
							{Name: "Derivatives", DifficultyScore: 7, Priority: "low", EstimatedHours: 5},
						},
					}, nil)
			},
			want: []planner.Topic{
				{Name: "Limits", DifficultyScore: 6, Priority: planner.PriorityHigh, EstimatedHours: 4, Category: "calculus"},
				{Name: "Derivatives", DifficultyScore: 7, Priority: planner.PriorityLow, EstimatedHours: 5},
			},
		},
		{
			name:         "out of range metadata is defaulted",
			documentText: "doc",
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().
					ExtractTopics(gomock.Any(), gomock.Any()).
					Return(inference.ExtractTopicsResponse{
						Topics: []inference.ExtractedTopic{
							{Name: "Algebra", DifficultyScore: 42, Priority: "urgent-ish", EstimatedHours: -1},
						},
					}, nil)
			},
			want: []planner.Topic{
				{Name: "Algebra", DifficultyScore: 5, Priority: planner.PriorityMedium, EstimatedHours: 3},
			},
		},
		{
			name:         "blank and duplicate names are dropped",
			documentText: "doc",
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().
					ExtractTopics(gomock.Any(), gomock.Any()).
					Return(inference.ExtractTopicsResponse{
						Topics: []inference.ExtractedTopic{
							{Name: "  "},
							{Name: "Algebra", DifficultyScore: 4, Priority: "medium", EstimatedHours: 2},
							{Name: "algebra", DifficultyScore: 9, Priority: "high", EstimatedHours: 8},
						},
					}, nil)
			},
			want: []planner.Topic{
				{Name: "Algebra", DifficultyScore: 4, Priority: planner.PriorityMedium, EstimatedHours: 2},
			},
		},
		{
			name:         "client error falls back to heuristics",
			documentText: "Chapter 1: Cells\n",
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().
					ExtractTopics(gomock.Any(), gomock.Any()).
					Return(inference.ExtractTopicsResponse{}, errors.New("httpClient.Post > connection refused"))
			},
			want: []planner.Topic{
				{Name: "Cells", DifficultyScore: 5, Priority: planner.PriorityMedium, EstimatedHours: 3},
			},
		},
		{
			name:         "empty model response falls back to heuristics",
			documentText: "- Photosynthesis\n",
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().
					ExtractTopics(gomock.Any(), gomock.Any()).
					Return(inference.ExtractTopicsResponse{}, nil)
			},
			want: []planner.Topic{
				{Name: "Photosynthesis", DifficultyScore: 5, Priority: planner.PriorityMedium, EstimatedHours: 3},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			tc.setup(client)

			topics, err := NewLLMExtractor(client).Extract(context.Background(), tc.documentText)
			require.NoError(t, err)
			assert.Equal(t, tc.want, topics)
		})
	}
}
