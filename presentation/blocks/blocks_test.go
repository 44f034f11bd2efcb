package blocks_test

import (
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyama86/YAIB/domain/entity"
	"github.com/pyama86/YAIB/presentation/blocks"
)

func inputBlocks(b slack.Blocks) map[string]*slack.InputBlock {
	inputs := map[string]*slack.InputBlock{}
	for _, block := range b.BlockSet {
		if input, ok := block.(*slack.InputBlock); ok {
			inputs[input.BlockID] = input
		}
	}
	return inputs
}

func TestOpenIncidentBlocks(t *testing.T) {
	b := blocks.OpenIncident(
		[]entity.Service{{Name: "Apply"}, {Name: "Payments"}},
		[]entity.Priority{{Name: "P1", Level: 1}},
	)
	inputs := inputBlocks(b)

	// block_id / action_id はフォームパーサが期待する値と一致していること
	tests := []struct {
		blockID  string
		actionID string
		optional bool
	}{
		{"incident_title_block", "incident_title", false},
		{"incident_description_block", "incident_description", false},
		{"service_selection_block", "service_selection", false},
		{"incident_priority_block", "incident_priority", false},
		{"incident_comms_lead_block", "comms_lead_select_action", true},
		{"incident_tech_lead_block", "tech_lead_select_action", true},
		{"incident_support_lead_block", "support_lead_select_action", true},
	}
	for _, tt := range tests {
		input, ok := inputs[tt.blockID]
		require.True(t, ok, tt.blockID)
		assert.Equal(t, tt.optional, input.Optional, tt.blockID)

		switch element := input.Element.(type) {
		case *slack.PlainTextInputBlockElement:
			assert.Equal(t, tt.actionID, element.ActionID)
		case *slack.SelectBlockElement:
			assert.Equal(t, tt.actionID, element.ActionID)
		default:
			t.Fatalf("unexpected element type for %s", tt.blockID)
		}
	}

	service := inputs["service_selection_block"].Element.(*slack.SelectBlockElement)
	require.Len(t, service.Options, 2)
	assert.Equal(t, "Apply", service.Options[0].Text.Text)

	priority := inputs["incident_priority_block"].Element.(*slack.SelectBlockElement)
	require.Len(t, priority.Options, 1)
	assert.Equal(t, "P1", priority.Options[0].Text.Text)
}

func TestUpdateIncidentBlocks(t *testing.T) {
	b := blocks.UpdateIncident([]entity.Priority{{Name: "P1", Level: 1}, {Name: "P2", Level: 2}})
	inputs := inputBlocks(b)

	// 更新モーダルは全フィールド任意
	for blockID, input := range inputs {
		assert.True(t, input.Optional, blockID)
	}

	for _, blockID := range []string{
		"incident_description_block",
		"incident_priority_block",
		"incident_comms_lead_block",
		"incident_tech_lead_block",
		"incident_support_lead_block",
	} {
		_, ok := inputs[blockID]
		assert.True(t, ok, blockID)
	}

	// タイトルとサービスは起票時に固定されるため更新対象に含めない
	_, ok := inputs["incident_title_block"]
	assert.False(t, ok)
	_, ok = inputs["service_selection_block"]
	assert.False(t, ok)
}
