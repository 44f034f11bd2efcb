package entity

import (
	"fmt"
	"strings"
	"time"
)

const incidentChannelMarker = "incident"

// IncidentChannelName はインシデントチャンネル名を決定的に生成する
// 形式: incident_{service}_{yymmdd}_{title}
func IncidentChannelName(service, title string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s",
		incidentChannelMarker,
		strings.ToLower(service),
		now.Format("060102"),
		slugify(title),
	)
}

// IsIncidentChannel はclose/updateのガード判定
func IsIncidentChannel(channelName string) bool {
	return strings.Contains(channelName, incidentChannelMarker)
}

// 小文字ASCII英数字以外の連続をアンダースコア1つに潰す
func slugify(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
