package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// トピック行の区切り。2行目以降は行頭にスペースが1つ入る。
// この空白はトピックを読む他のコンシューマとの互換性のために厳守する。
const summaryLineSeparator = "\n "

const summaryLineCount = 5

// Summary はチャンネルトピックに永続化するインシデントの要約
type Summary struct {
	Description string
	Priority    string
	CommsLead   string
	TechLead    string
	SupportLead string
}

// Encode は常に5行を出力する。リード未指定でも行は省略せず
// メンション部分だけを空にして、デコード時の行位置を固定する。
func (s Summary) Encode() string {
	lines := []string{
		descriptionLine(s.Description),
		priorityLine(s.Priority),
		leadLine("Comms lead", s.CommsLead),
		leadLine("Tech lead", s.TechLead),
		leadLine("Support lead", s.SupportLead),
	}
	return strings.Join(lines, summaryLineSeparator)
}

// MergeSummary は現在のトピックに更新内容を重ねた新しいトピックを返す。
// 行は位置で解釈し(0..4 = description, priority, comms, tech, support)、
// 更新対象のフィールドだけを差し替えて残りは元の行をそのまま残す。
func MergeSummary(currentTopic string, update IncidentUpdateRequest) string {
	lines := make([]string, summaryLineCount)
	for i, line := range strings.Split(currentTopic, "\n") {
		if i >= summaryLineCount {
			break
		}
		lines[i] = strings.TrimSpace(line)
	}

	if update.Description != nil {
		lines[0] = descriptionLine(*update.Description)
	}
	if update.Priority != nil {
		lines[1] = priorityLine(*update.Priority)
	}
	if update.CommsLead != nil {
		lines[2] = leadLine("Comms lead", *update.CommsLead)
	}
	if update.TechLead != nil {
		lines[3] = leadLine("Tech lead", *update.TechLead)
	}
	if update.SupportLead != nil {
		lines[4] = leadLine("Support lead", *update.SupportLead)
	}

	return strings.Join(lines, summaryLineSeparator)
}

// InviteAdditions は更新で指定されたリードのうち、まだチャンネルに
// いないユーザーだけをcomms, tech, supportの順で返す
func InviteAdditions(update IncidentUpdateRequest, currentMembers []string) []string {
	members := make(map[string]bool, len(currentMembers))
	for _, m := range currentMembers {
		members[m] = true
	}

	var additions []string
	for _, lead := range []*string{update.CommsLead, update.TechLead, update.SupportLead} {
		if lead == nil || *lead == "" {
			continue
		}
		if !members[*lead] {
			additions = append(additions, *lead)
		}
	}
	return additions
}

func descriptionLine(description string) string {
	return "Description: " + Capitalize(description)
}

func priorityLine(priority string) string {
	return "Priority: " + priority
}

func leadLine(label, userID string) string {
	if userID == "" {
		return label + ": "
	}
	return label + ": <@" + userID + ">"
}

// Capitalize は先頭の1文字だけを大文字にする。残りは変更しない
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
