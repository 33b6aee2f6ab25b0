package telegram

//go:generate mockgen -package mocks -destination mocks/mock_client.go verse_channel_bot/internal/domain/telegram Client

import "context"

// Client defines the two channel operations a post cycle needs.
// Failures are reported as false; implementations log the cause.
type Client interface {
	CheckConnectivity(ctx context.Context) bool
	SendMessage(ctx context.Context, text string) bool
}
