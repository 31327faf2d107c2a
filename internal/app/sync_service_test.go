package app

import (
	"context"
	"errors"
	"testing"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) SyncStory(ctx context.Context, story *domain.Story) error {
	return m.Called(ctx, story).Error(0)
}

func TestStorySyncService_HandleEvent(t *testing.T) {
	sink := new(MockSink)
	story := &domain.Story{ID: 45}
	sink.On("SyncStory", mock.Anything, story).Return(nil).Once()

	svc := NewStorySyncService(nil, sink)

	assert.NoError(t, svc.handleEvent(context.Background(), story))
	sink.AssertExpectations(t)
}

func TestStorySyncService_HandleEventError(t *testing.T) {
	sink := new(MockSink)
	sink.On("SyncStory", mock.Anything, mock.Anything).Return(errors.New("downstream unavailable"))

	svc := NewStorySyncService(nil, sink)

	assert.EqualError(t, svc.handleEvent(context.Background(), &domain.Story{ID: 1}), "downstream unavailable")
}
