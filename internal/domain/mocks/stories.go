package mocks

import (
	"context"
	"io"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockStoriesService struct {
	mock.Mock
}

var _ domain.StoriesService = (*MockStoriesService)(nil)

func (m *MockStoriesService) GetTopStories(ctx context.Context, page int) (*domain.APIResponse[[]domain.Story], error) {
	args := m.Called(ctx, page)
	return response(args)
}

func (m *MockStoriesService) Search(ctx context.Context, query string, page int) (*domain.APIResponse[[]domain.Story], error) {
	args := m.Called(ctx, query, page)
	return response(args)
}

func response(args mock.Arguments) (*domain.APIResponse[[]domain.Story], error) {
	var resp *domain.APIResponse[[]domain.Story]
	if args.Get(0) != nil {
		resp = args.Get(0).(*domain.APIResponse[[]domain.Story])
	}
	return resp, args.Error(1)
}

type MockDataSource struct {
	mock.Mock
}

var _ domain.StoriesDataSource = (*MockDataSource)(nil)

func (m *MockDataSource) LoadTopStories(ctx context.Context, page int) domain.Result[[]domain.Story] {
	args := m.Called(ctx, page)
	return args.Get(0).(domain.Result[[]domain.Story])
}

func (m *MockDataSource) Search(ctx context.Context, query string, page int) domain.Result[[]domain.Story] {
	args := m.Called(ctx, query, page)
	return args.Get(0).(domain.Result[[]domain.Story])
}

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(reader io.Reader) ([]domain.Story, error) {
	args := m.Called(reader)

	// Handle nil stories
	var stories []domain.Story
	if args.Get(0) != nil {
		stories = args.Get(0).([]domain.Story)
	}
	return stories, args.Error(1)
}

// Success builds a 200 response carrying stories.
func Success(stories []domain.Story) *domain.APIResponse[[]domain.Story] {
	return &domain.APIResponse[[]domain.Story]{StatusCode: 200, Status: "200 OK", Body: &stories}
}

// Error builds a failed response with the given status and raw body.
func Error(status int, body string) *domain.APIResponse[[]domain.Story] {
	return &domain.APIResponse[[]domain.Story]{StatusCode: status, ErrorBody: []byte(body)}
}
