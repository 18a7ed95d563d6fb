package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Producer struct {
	mock.Mock
}

func (m *Producer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	return m.Called(ctx, topic, key, value).Error(0)
}
