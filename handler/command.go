package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pyama86/YAIB/domain/entity"
	"github.com/pyama86/YAIB/domain/repository"
	"github.com/pyama86/YAIB/presentation/blocks"
	"github.com/slack-go/slack"
)

const helpMessage = `Usage: /incident <subcommand>
  open    open a new incident
  update  update the incident in this channel
  close   close the incident in this channel
  help    show this message`

type CommandHandler struct {
	ctx             context.Context
	repository      repository.Repository
	slackRepository repository.SlackRepositoryer
	incident        *IncidentHandler
}

func NewCommandHandler(
	ctx context.Context,
	repo repository.Repository,
	slackRepository repository.SlackRepositoryer,
	incident *IncidentHandler,
) *CommandHandler {
	return &CommandHandler{
		ctx:             ctx,
		repository:      repo,
		slackRepository: slackRepository,
		incident:        incident,
	}
}

// Handle はスラッシュコマンドへの同期応答文を返す。
// モーダルを開くだけのコマンドは空文字を返し、空ACKさせる
func (h *CommandHandler) Handle(command *slack.SlashCommand) (string, error) {
	switch command.Command {
	case "/incident":
		return h.handleIncidentCommand(command)
	case "/closeincident":
		return h.incident.CloseIncident(command.ChannelID, command.ChannelName, command.UserID)
	case "/update":
		return h.openUpdateModal(command)
	case "/ping":
		slog.Info("Received a ping, responding with pong.")
		return "pong", nil
	}
	return "", nil
}

func (h *CommandHandler) handleIncidentCommand(command *slack.SlashCommand) (string, error) {
	subcommand := ""
	if fields := strings.Fields(command.Text); len(fields) > 0 {
		subcommand = fields[0]
	}

	switch subcommand {
	case "open":
		return h.openIncidentModal(command)
	case "update":
		return h.openUpdateModal(command)
	case "close":
		return h.incident.CloseIncident(command.ChannelID, command.ChannelName, command.UserID)
	default:
		return helpMessage, nil
	}
}

func (h *CommandHandler) openIncidentModal(command *slack.SlashCommand) (string, error) {
	view := slack.ModalViewRequest{
		Type:       slack.ViewType("modal"),
		Title:      slack.NewTextBlockObject("plain_text", "Open an incident", false, false),
		CallbackID: openModalCallbackID,
		Submit:     slack.NewTextBlockObject("plain_text", "Open", false, false),
		Close:      slack.NewTextBlockObject("plain_text", "Cancel", false, false),
		Blocks: blocks.OpenIncident(
			h.repository.Services(h.ctx),
			h.repository.Priorities(h.ctx),
		),
		// 発端チャンネルを送信時まで持ち回る
		PrivateMetadata: command.ChannelID,
	}
	if err := h.slackRepository.OpenView(command.TriggerID, view); err != nil {
		return "", fmt.Errorf("failed to OpenView: %w", err)
	}
	return "", nil
}

func (h *CommandHandler) openUpdateModal(command *slack.SlashCommand) (string, error) {
	// 更新対象はコマンドが打たれたチャンネル自身
	if !entity.IsIncidentChannel(command.ChannelName) {
		return notIncidentChannelMessage, nil
	}

	view := slack.ModalViewRequest{
		Type:            slack.ViewType("modal"),
		Title:           slack.NewTextBlockObject("plain_text", "Update the incident", false, false),
		CallbackID:      updateModalCallbackID,
		Submit:          slack.NewTextBlockObject("plain_text", "Update", false, false),
		Close:           slack.NewTextBlockObject("plain_text", "Cancel", false, false),
		Blocks:          blocks.UpdateIncident(h.repository.Priorities(h.ctx)),
		PrivateMetadata: command.ChannelID,
	}
	if err := h.slackRepository.OpenView(command.TriggerID, view); err != nil {
		return "", fmt.Errorf("failed to OpenView: %w", err)
	}
	return "", nil
}
