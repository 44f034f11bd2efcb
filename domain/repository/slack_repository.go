package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Songmu/retry"
	"github.com/slack-go/slack"
)

var ErrSlackNotFound = fmt.Errorf("not found")

// SlackRepositoryer はオーケストレータが依存するチャットプラットフォームの操作面。
// ライフサイクル操作は意図的にリトライしない(部分失敗をそのまま観測して
// ユーザーに伝えるため)。唯一の例外はOpenViewで、trigger_idの往復は
// インシデントの状態に影響しないため再試行しても安全。
type SlackRepositoryer interface {
	CreateConversation(ctx context.Context, name string) (*slack.Channel, error)
	InviteUsersToConversation(ctx context.Context, channelID string, users ...string) error
	SetTopicOfConversation(ctx context.Context, channelID, topic string) error
	PostMessage(ctx context.Context, channelID, text string) (string, error)
	PostEphemeral(ctx context.Context, channelID, userID, text string) error
	AddPin(ctx context.Context, channelID, timestamp string) error
	ConversationInfo(ctx context.Context, channelID string) (*slack.Channel, error)
	ConversationMembers(ctx context.Context, channelID string) ([]string, error)
	OpenView(triggerID string, view slack.ModalViewRequest) error
}

type SlackRepository struct {
	client *slack.Client
}

func NewSlackRepository(client *slack.Client) *SlackRepository {
	return &SlackRepository{client: client}
}

func (h *SlackRepository) CreateConversation(ctx context.Context, name string) (*slack.Channel, error) {
	channel, err := h.client.CreateConversationContext(ctx, slack.CreateConversationParams{
		ChannelName: name,
		IsPrivate:   false,
	})
	if err != nil {
		slog.Warn("CreateConversation", slog.Any("name", name), slog.Any("err", err))
		return nil, err
	}
	return channel, nil
}

func (h *SlackRepository) InviteUsersToConversation(ctx context.Context, channelID string, users ...string) error {
	_, err := h.client.InviteUsersToConversationContext(ctx, channelID, users...)
	if err != nil {
		slog.Warn("InviteUsersToConversation", slog.Any("channelID", channelID), slog.Any("users", users), slog.Any("err", err))
	}
	return err
}

func (h *SlackRepository) SetTopicOfConversation(ctx context.Context, channelID, topic string) error {
	_, err := h.client.SetTopicOfConversationContext(ctx, channelID, topic)
	if err != nil {
		slog.Warn("SetTopicOfConversation", slog.Any("channelID", channelID), slog.Any("err", err))
	}
	return err
}

func (h *SlackRepository) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	_, ts, err := h.client.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		slog.Warn("PostMessage", slog.Any("channelID", channelID), slog.Any("err", err))
		return "", err
	}
	return ts, nil
}

func (h *SlackRepository) PostEphemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := h.client.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		slog.Warn("PostEphemeral", slog.Any("channelID", channelID), slog.Any("userID", userID), slog.Any("err", err))
	}
	return err
}

func (h *SlackRepository) AddPin(ctx context.Context, channelID, timestamp string) error {
	err := h.client.AddPinContext(ctx, channelID, slack.ItemRef{
		Channel:   channelID,
		Timestamp: timestamp,
	})
	if err != nil {
		slog.Warn("AddPin", slog.Any("channelID", channelID), slog.Any("timestamp", timestamp), slog.Any("err", err))
	}
	return err
}

func (h *SlackRepository) ConversationInfo(ctx context.Context, channelID string) (*slack.Channel, error) {
	channel, err := h.client.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		slog.Warn("ConversationInfo", slog.Any("channelID", channelID), slog.Any("err", err))
		return nil, err
	}
	return channel, nil
}

func (h *SlackRepository) ConversationMembers(ctx context.Context, channelID string) ([]string, error) {
	var members []string
	params := &slack.GetUsersInConversationParameters{
		ChannelID: channelID,
		Limit:     1000,
	}
	for {
		ids, next, err := h.client.GetUsersInConversationContext(ctx, params)
		if err != nil {
			slog.Warn("ConversationMembers", slog.Any("channelID", channelID), slog.Any("err", err))
			return nil, err
		}
		members = append(members, ids...)
		if next == "" {
			break
		}
		params.Cursor = next
	}
	return members, nil
}

func (h *SlackRepository) OpenView(triggerID string, view slack.ModalViewRequest) error {
	err := retry.Retry(3, time.Second, func() error {
		_, err := h.client.OpenView(triggerID, view)
		if err != nil {
			slog.Warn("OpenView", slog.Any("triggerID", triggerID), slog.Any("err", err))
		}
		return err
	})
	if err != nil {
		slog.Error("Failed to OpenView", slog.Any("err", err))
	}
	return err
}
