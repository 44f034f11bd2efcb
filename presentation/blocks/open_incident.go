package blocks

import (
	"github.com/pyama86/YAIB/domain/entity"
	"github.com/slack-go/slack"
)

// OpenIncident はインシデント起票モーダルの本体。
// block_id / action_idはフォームパーサと対で固定
func OpenIncident(services []entity.Service, priorities []entity.Priority) slack.Blocks {
	serviceOptions := make([]*slack.OptionBlockObject, 0, len(services))
	for _, service := range services {
		serviceOptions = append(serviceOptions, slack.NewOptionBlockObject(
			service.Name,
			slack.NewTextBlockObject("plain_text", service.Name, false, false),
			nil,
		))
	}
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
			// タイトル
			&slack.InputBlock{
				Type:    slack.MBTInput,
				BlockID: "incident_title_block",
				Label: &slack.TextBlockObject{
					Type: "plain_text",
					Text: "Title",
				},
				Element: &slack.PlainTextInputBlockElement{
					Type:     slack.METPlainTextInput,
					ActionID: "incident_title",
					Placeholder: slack.NewTextBlockObject(
						"plain_text", "e.g. Database outage", false, false,
					),
				},
				Optional: false,
			},

			// 事象内容
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
						"plain_text", "What is happening?", false, false,
					),
				},
				Optional: false,
			},

			slack.NewDividerBlock(),

			// サービス
			&slack.InputBlock{
				Type:    slack.MBTInput,
				BlockID: "service_selection_block",
				Label: &slack.TextBlockObject{
					Type: "plain_text",
					Text: "Service",
				},
				Element: &slack.SelectBlockElement{
					Type:        slack.OptTypeStatic,
					ActionID:    "service_selection",
					Options:     serviceOptions,
					Placeholder: slack.NewTextBlockObject("plain_text", "Select a service", false, false),
				},
				Optional: false,
			},

			// 優先度
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
				Optional: false,
			},

			slack.NewDividerBlock(),

			// リードはいずれも後からの指名でよい
			leadSelectBlock("incident_comms_lead_block", "comms_lead_select_action", "Comms lead"),
			leadSelectBlock("incident_tech_lead_block", "tech_lead_select_action", "Tech lead"),
			leadSelectBlock("incident_support_lead_block", "support_lead_select_action", "Support lead"),
		},
	}
}

func leadSelectBlock(blockID, actionID, label string) *slack.InputBlock {
	return &slack.InputBlock{
		Type:    slack.MBTInput,
		BlockID: blockID,
		Label: &slack.TextBlockObject{
			Type: "plain_text",
			Text: label,
		},
		Element: &slack.SelectBlockElement{
			Type:        slack.OptTypeUser,
			ActionID:    actionID,
			Placeholder: slack.NewTextBlockObject("plain_text", "Select a user", false, false),
		},
		Optional: true,
	}
}
