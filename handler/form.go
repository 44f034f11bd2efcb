package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pyama86/YAIB/domain/entity"
	"github.com/slack-go/slack"
)

var validate = validator.New()

// MissingFieldError はモーダルペイロードに既知のフィールドパスが
// 存在しなかったことを示す。プラットフォーム側の不整合なので
// ユーザーには汎用メッセージしか返さない
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Path)
}

// parseOpenSubmission は起票モーダルの送信内容を型付きのリクエストに変換する。
// 必須フィールドの欠落はこの境界で検出して深部に持ち込まない
func parseOpenSubmission(view *slack.View) (*entity.IncidentRequest, error) {
	values := view.State.Values

	title, err := textValue(values, "incident_title_block", "incident_title")
	if err != nil {
		return nil, err
	}
	description, err := textValue(values, "incident_description_block", "incident_description")
	if err != nil {
		return nil, err
	}
	service, err := selectedOptionText(values, "service_selection_block", "service_selection")
	if err != nil {
		return nil, err
	}
	priority, err := selectedOptionText(values, "incident_priority_block", "incident_priority")
	if err != nil {
		return nil, err
	}

	req := &entity.IncidentRequest{
		Title:       title,
		Description: description,
		Service:     service,
		Priority:    priority,
		// リードは任意
		CommsLead:   selectedUser(values, "incident_comms_lead_block", "comms_lead_select_action"),
		TechLead:    selectedUser(values, "incident_tech_lead_block", "tech_lead_select_action"),
		SupportLead: selectedUser(values, "incident_support_lead_block", "support_lead_select_action"),
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid incident request: %w", err)
	}
	return req, nil
}

// parseUpdateSubmission は更新モーダルをパースする。
// 欠落・未入力のフィールドは空文字ではなくnil(変更なし)になる
func parseUpdateSubmission(view *slack.View) *entity.IncidentUpdateRequest {
	values := view.State.Values

	update := &entity.IncidentUpdateRequest{}
	if v, err := textValue(values, "incident_description_block", "incident_description"); err == nil && v != "" {
		update.Description = &v
	}
	if v, err := selectedOptionText(values, "incident_priority_block", "incident_priority"); err == nil && v != "" {
		update.Priority = &v
	}
	if v := selectedUser(values, "incident_comms_lead_block", "comms_lead_select_action"); v != "" {
		update.CommsLead = &v
	}
	if v := selectedUser(values, "incident_tech_lead_block", "tech_lead_select_action"); v != "" {
		update.TechLead = &v
	}
	if v := selectedUser(values, "incident_support_lead_block", "support_lead_select_action"); v != "" {
		update.SupportLead = &v
	}
	return update
}

func blockAction(values map[string]map[string]slack.BlockAction, blockID, actionID string) (*slack.BlockAction, error) {
	block, ok := values[blockID]
	if !ok {
		return nil, &MissingFieldError{Path: blockID}
	}
	action, ok := block[actionID]
	if !ok {
		return nil, &MissingFieldError{Path: blockID + "." + actionID}
	}
	return &action, nil
}

func textValue(values map[string]map[string]slack.BlockAction, blockID, actionID string) (string, error) {
	action, err := blockAction(values, blockID, actionID)
	if err != nil {
		return "", err
	}
	return action.Value, nil
}

func selectedOptionText(values map[string]map[string]slack.BlockAction, blockID, actionID string) (string, error) {
	action, err := blockAction(values, blockID, actionID)
	if err != nil {
		return "", err
	}
	if action.SelectedOption.Text == nil {
		return "", nil
	}
	return action.SelectedOption.Text.Text, nil
}

func selectedUser(values map[string]map[string]slack.BlockAction, blockID, actionID string) string {
	action, err := blockAction(values, blockID, actionID)
	if err != nil {
		return ""
	}
	return action.SelectedUser
}
