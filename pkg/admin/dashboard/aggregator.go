package dashboard

import (
	"context"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
)

// Aggregator computes the admin dashboard counters.
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats retrieves the dashboard statistics in one pass.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DashboardStatsResponse, error) {
	totalChatbots, err := uow.ChatbotRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	activeChatbots, err := uow.ChatbotRepository().Count(ctx, specification.Filter("active", true))
	if err != nil {
		return nil, err
	}

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	activeUsers, err := uow.UserRepository().Count(ctx, specification.ByActive{Active: true})
	if err != nil {
		return nil, err
	}

	totalMessages, err := uow.MessageRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	upcomingEvents, err := uow.ChatbotRepository().Count(ctx, specification.StartsAfter{Date: today})
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	usersThisMonth, err := uow.UserRepository().Count(ctx, specification.CreatedAfter{Time: monthStart})
	if err != nil {
		return nil, err
	}
	chatbotsThisMonth, err := uow.ChatbotRepository().Count(ctx, specification.CreatedAfter{Time: monthStart})
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalChatbots:     totalChatbots,
		ActiveChatbots:    activeChatbots,
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		TotalMessages:     totalMessages,
		UpcomingEvents:    upcomingEvents,
		UsersThisMonth:    usersThisMonth,
		ChatbotsThisMonth: chatbotsThisMonth,
	}, nil
}
