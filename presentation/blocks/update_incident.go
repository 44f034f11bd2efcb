package blocks

import (
	"github.com/pyama86/YAIB/domain/entity"
	"github.com/slack-go/slack"
)

// UpdateIncident は更新モーダルの本体。全フィールドが任意で、
// 未入力は「変更なし」としてパースされる
func UpdateIncident(priorities []entity.Priority) slack.Blocks {
	priorityOptions := make([]*slack.OptionBlockObject, 0, len(priorities))
	for _, priority := range priorities {
		priorityOptions = append(priorityOptions, slack.NewOptionBlockObject(
			priority.Name,
			slack.NewTextBlockObject("plain_text", priority.Name, false, false),
			nil,
		))
	}

	return slack.Blocks{
		BlockSet: []slack.Block{
			&slack.InputBlock{
				Type:    slack.MBTInput,
				BlockID: "incident_description_block",
				Label: &slack.TextBlockObject{
					Type: "plain_text",
					Text: "Description",
				},
				Element: &slack.PlainTextInputBlockElement{
					Type:      slack.METPlainTextInput,
					ActionID:  "incident_description",
					Multiline: true,
					Placeholder: slack.NewTextBlockObject(
						"plain_text", "Leave blank to keep the current description", false, false,
					),
				},
				Optional: true,
			},

			&slack.InputBlock{
				Type:    slack.MBTInput,
				BlockID: "incident_priority_block",
				Label: &slack.TextBlockObject{
					Type: "plain_text",
					Text: "Priority",
				},
				Element: &slack.SelectBlockElement{
					Type:        slack.OptTypeStatic,
					ActionID:    "incident_priority",
					Options:     priorityOptions,
					Placeholder: slack.NewTextBlockObject("plain_text", "Select a priority", false, false),
				},
				Optional: true,
			},

			slack.NewDividerBlock(),

			leadSelectBlock("incident_comms_lead_block", "comms_lead_select_action", "Comms lead"),
			leadSelectBlock("incident_tech_lead_block", "tech_lead_select_action", "Tech lead"),
			leadSelectBlock("incident_support_lead_block", "support_lead_select_action", "Support lead"),
		},
	}
}
