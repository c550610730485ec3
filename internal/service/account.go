package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudtrim/cloudtrim/internal/model"
)

// demoUser is the only identity the API knows about.
var demoUser = model.User{
	ID:    "1",
	Email: "user@example.com",
	Tier:  model.TierFree,
}

// AWSStatus is the placeholder cloud connection state.
type AWSStatus struct {
	Connected bool
	LastSync  time.Time
}

// AccountService answers identity and connection questions with fixed data.
type AccountService struct {
	now    Clock
	logger *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(now Clock, logger *slog.Logger) *AccountService {
	return &AccountService{now: orNow(now), logger: logger}
}

// CurrentUser returns the hardcoded user.
func (s *AccountService) CurrentUser() model.User {
	return demoUser
}

// ConnectAWS pretends to store credentials. Nothing is stored.
func (s *AccountService) ConnectAWS(ctx context.Context) {
	s.logger.InfoContext(ctx, "aws connect requested", slog.Bool("stored", false))
}

// AWSStatus always reports a live connection synced just now.
func (s *AccountService) AWSStatus() AWSStatus {
	return AWSStatus{Connected: true, LastSync: s.now()}
}
