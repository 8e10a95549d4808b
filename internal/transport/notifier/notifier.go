// Package notifier delivers review reports to Slack.
package notifier

import (
	"context"
	"fmt"

	"pr-review-status/internal/entities"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Notifier posts reports into one channel.
type Notifier struct {
	log     *zap.SugaredLogger
	client  *slack.Client
	channel string
}

// New creates a notifier using a bot token.
func New(log *zap.SugaredLogger, token, channel string, opts ...slack.Option) *Notifier {
	return &Notifier{
		log:     log.Named("notifier.slack"),
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

// Send posts the report with link and media unfurling disabled.
func (n *Notifier) Send(ctx context.Context, r *entities.Report) error {
	msg := BuildMessage(r)

	channelID, ts, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(msg.Text, false),
		slack.MsgOptionBlocks(msg.Blocks...),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	)
	if err != nil {
		n.log.Errorw("failed to send report", "channel", n.channel, "error", err)
		return fmt.Errorf("%w: post slack message: %w", entities.ErrDelivery, err)
	}

	n.log.Infow("report sent", "channel", channelID, "ts", ts, "repository", r.Repository.String(), "total", r.Total)
	return nil
}
