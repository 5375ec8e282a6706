package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
)

// MockActivityRecorder simula el servicio de actividad para el consumidor.
type MockActivityRecorder struct {
	mock.Mock
}

func (m *MockActivityRecorder) Record(ctx context.Context, evt sharedEvents.IntegrationEvent) (bool, error) {
	args := m.Called(ctx, evt)
	return args.Bool(0), args.Error(1)
}
