package handler

import (
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

const (
	openModalCallbackID   = "incident_open"
	updateModalCallbackID = "incident_update"
)

type CallbackHandler struct {
	incident *IncidentHandler
	appID    string
}

func NewCallbackHandler(incident *IncidentHandler, appID string) *CallbackHandler {
	return &CallbackHandler{
		incident: incident,
		appID:    appID,
	}
}

func (h *CallbackHandler) Handle(callback *slack.InteractionCallback) error {
	if callback.Type != slack.InteractionTypeViewSubmission {
		return nil
	}

	// 他アプリのモーダル送信は無視する
	if callback.View.AppID != h.appID {
		slog.Warn("ignoring view submission from foreign app", slog.String("app_id", callback.View.AppID))
		return nil
	}

	switch callback.View.CallbackID {
	case openModalCallbackID:
		return h.submitOpenModal(callback)
	case updateModalCallbackID:
		return h.submitUpdateModal(callback)
	}
	return nil
}

func (h *CallbackHandler) submitOpenModal(callback *slack.InteractionCallback) error {
	req, err := parseOpenSubmission(&callback.View)
	if err != nil {
		// フォーム不整合はインテグレーション側の問題。ログに残して汎用通知のみ
		h.incident.notifyUser(callback.User.ID, "Something went wrong opening the incident. Please try again.")
		return fmt.Errorf("parseOpenSubmission failed: %w", err)
	}
	req.DeclaredUserID = callback.User.ID
	// 発端チャンネルはモーダルのprivate_metadataで往復させる
	req.CallingChannel = callback.View.PrivateMetadata

	slog.Info("open incident",
		slog.String("service", req.Service),
		slog.String("priority", req.Priority),
		slog.String("user", req.DeclaredUserID),
	)
	if err := h.incident.OpenIncident(req); err != nil {
		return fmt.Errorf("OpenIncident failed: %w", err)
	}
	return nil
}

func (h *CallbackHandler) submitUpdateModal(callback *slack.InteractionCallback) error {
	channelID := callback.View.PrivateMetadata
	if channelID == "" {
		return fmt.Errorf("update modal has no channel in private_metadata")
	}

	update := parseUpdateSubmission(&callback.View)
	if update.IsEmpty() {
		return nil
	}

	slog.Info("update incident", slog.String("channel", channelID), slog.String("user", callback.User.ID))
	if err := h.incident.UpdateIncident(channelID, callback.User.ID, update); err != nil {
		return fmt.Errorf("UpdateIncident failed: %w", err)
	}
	return nil
}
