package repository

import (
	"errors"
	"strings"

	"github.com/slack-go/slack"
)

// Slack APIのエラーコードをライフサイクル側の分岐に使える形で判定する。
// slack-goはエンドポイントによってSlackErrorResponseを返す場合と
// コード文字列そのままのerrorを返す場合があるので両方を見る。
func hasSlackErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var serr slack.SlackErrorResponse
	if errors.As(err, &serr) {
		return serr.Err == code
	}
	return strings.Contains(err.Error(), code)
}

// チャンネル名の衝突
func IsNameTaken(err error) bool {
	return hasSlackErrorCode(err, "name_taken")
}

// ボット自身を招待しようとした
func IsCantInviteSelf(err error) bool {
	return hasSlackErrorCode(err, "cant_invite_self")
}

// ボットが対象チャンネルのメンバーではない
func IsNotInChannel(err error) bool {
	return hasSlackErrorCode(err, "not_in_channel")
}

// 招待できないユーザー。cant_invite_selfはコードが前方一致するので除外する
func IsCantInvite(err error) bool {
	return hasSlackErrorCode(err, "cant_invite") && !IsCantInviteSelf(err)
}

func IsUserNotFound(err error) bool {
	return hasSlackErrorCode(err, "user_not_found")
}

// トピックなどの本文がプラットフォームの上限を超えた
func IsTooLong(err error) bool {
	return hasSlackErrorCode(err, "too_long")
}
