package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/pyama86/YAIB/domain/entity"
	"github.com/pyama86/YAIB/domain/repository"
	"github.com/slack-go/slack/slackevents"
)

type EventHandler struct {
	ctx             context.Context
	slackRepository repository.SlackRepositoryer
	botUserID       string
	meetBaseURL     string
}

func NewEventHandler(ctx context.Context, slackRepository repository.SlackRepositoryer, botUserID string, config *repository.Config) *EventHandler {
	return &EventHandler{
		ctx:             ctx,
		slackRepository: slackRepository,
		botUserID:       botUserID,
		meetBaseURL:     config.MeetBaseURL,
	}
}

func (h *EventHandler) Handle(event *slackevents.EventsAPIInnerEvent) error {
	switch ev := event.Data.(type) {
	case *slackevents.MemberJoinedChannelEvent:
		return h.welcomeMember(ev)
	}
	return nil
}

// インシデントチャンネルに参加したメンバーに案内を出す
func (h *EventHandler) welcomeMember(event *slackevents.MemberJoinedChannelEvent) error {
	if event.User == h.botUserID {
		return nil
	}

	ctx, cancel := context.WithTimeout(h.ctx, slackCallTimeout)
	defer cancel()
	channel, err := h.slackRepository.ConversationInfo(ctx, event.Channel)
	if err != nil {
		return fmt.Errorf("failed to ConversationInfo: %w", err)
	}
	if !entity.IsIncidentChannel(channel.Name) {
		return nil
	}

	// incident_{service}_{yymmdd}_{title...} のタイトル部分から会議リンクを組み立てる
	parts := strings.Split(channel.Name, "_")
	meetID := ""
	if len(parts) > 3 {
		meetID = strings.Join(parts[3:], "-")
	}

	text := fmt.Sprintf("Welcome <@%s> to the incident channel. Please review the docs and join the <%s/%s| discussion>.", event.User, h.meetBaseURL, meetID)
	ectx, ecancel := context.WithTimeout(h.ctx, slackCallTimeout)
	defer ecancel()
	if err := h.slackRepository.PostEphemeral(ectx, event.Channel, event.User, text); err != nil {
		return fmt.Errorf("failed to PostEphemeral: %w", err)
	}
	return nil
}
