// Package notify pushes order notifications to the admin Telegram channel.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"configureflow/internal/pricing"
	"configureflow/internal/storage"
	"configureflow/pkg/currency"
)

type Notifier struct {
	bot       *tgbotapi.BotAPI
	channelID int64
	logger    *zap.Logger
}

// New authorizes the Telegram bot used for admin notifications.
func New(token string, channelID int64, logger *zap.Logger) (*Notifier, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Notification bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	return &Notifier{
		bot:       botAPI,
		channelID: channelID,
		logger:    logger,
	}, nil
}

// NotifyOrderSubmitted posts a summary of a new order to the admin channel
// and attaches the Excel quote sheet. Failures are logged, never propagated:
// a missed notification must not fail the order.
func (n *Notifier) NotifyOrderSubmitted(order storage.Order, breakdown pricing.Breakdown) {
	if n.channelID == 0 {
		n.logger.Warn("Channel notifications disabled - no channel ID configured")
		return
	}

	msg := tgbotapi.NewMessage(n.channelID, formatOrderSummary(order, breakdown))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("Failed to send order notification",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		return
	}

	path, err := storage.ExportOrderToExcel(order, breakdown)
	if err != nil {
		n.logger.Error("Failed to create Excel file for order",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		return
	}

	doc := tgbotapi.NewDocument(n.channelID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("Quote details for order #%d", order.ID)
	if _, err := n.bot.Send(doc); err != nil {
		n.logger.Error("Failed to send order document",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}

func formatOrderSummary(order storage.Order, breakdown pricing.Breakdown) string {
	format := func(v float64) string {
		return currency.Format(pricing.RoundToCents(v), order.Currency)
	}

	return fmt.Sprintf(
		"New order #%d\n\n"+
			"Product: %s\n"+
			"Quantity: %d\n"+
			"Subtotal: %s\n"+
			"Discount: %s\n"+
			"Total: %s\n"+
			"Contact: %s\n"+
			"Status: %s\n"+
			"Date: %s",
		order.ID,
		order.ProductID,
		order.Quantity,
		format(breakdown.Subtotal),
		format(breakdown.QuantityDiscount),
		format(breakdown.Total),
		order.Contact,
		order.Status,
		order.CreatedAt.Format("02.01.2006 15:04"),
	)
}
