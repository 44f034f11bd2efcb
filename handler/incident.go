package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pyama86/YAIB/domain/entity"
	"github.com/pyama86/YAIB/domain/repository"
	"golang.org/x/sync/errgroup"
)

func timeNow() time.Time {
	return time.Now()
}

// リモート呼び出し1回あたりの上限。タイムアウトは一過性の失敗として
// 報告するだけでリトライはしない
const slackCallTimeout = 30 * time.Second

const (
	notIncidentChannelMessage = "This is not an incident channel."
	nameTakenMessage          = "That incident channel name has already been taken. Please try another."
	cantInviteSelfMessage     = "You can’t invite the bot to the channel. You’ll need to manually add the leads now."
	cantInviteMessage         = "That user can’t be invited. Please add them to the channel manually."
	userNotFoundMessage       = "That user could not be found. Please add the leads manually."
	topicTooLongMessage       = "The description is too long for the channel topic. Please shorten it and update the incident."
	incidentUpdatedMessage    = "Incident has been updated"
	incidentClosedMessage     = "<!here> This incident has now closed."
	closeAckMessage           = "You’ve closed the incident."
)

// IncidentHandler はopen/update/closeの副作用計画を組み立てて実行する。
// 独立なSlack呼び出しは並行に発行し、全ブランチの完了を待ってから戻る。
// ブランチごとの既知のエラーはユーザー向けの文言に翻訳して握り、
// 兄弟ブランチを道連れにしない。
type IncidentHandler struct {
	ctx             context.Context
	repository      repository.Repository
	slackRepository repository.SlackRepositoryer
	now             func() time.Time
	playbookURL     string
	categoriesURL   string
	templateURL     string
}

func NewIncidentHandler(
	ctx context.Context,
	repo repository.Repository,
	slackRepository repository.SlackRepositoryer,
	config *repository.Config,
) *IncidentHandler {
	return &IncidentHandler{
		ctx:             ctx,
		repository:      repo,
		slackRepository: slackRepository,
		now:             timeNow,
		playbookURL:     config.PlaybookURL,
		categoriesURL:   config.CategoriesURL,
		templateURL:     config.TemplateURL,
	}
}

func (h *IncidentHandler) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(h.ctx, slackCallTimeout)
}

// OpenIncident はチャンネルを作成し、招待・トピック設定・オンボーディング・
// 周知を並行に実行してからインシデントレコードを保存する
func (h *IncidentHandler) OpenIncident(req *entity.IncidentRequest) error {
	channelName := entity.IncidentChannelName(req.Service, req.Title, h.now())

	ctx, cancel := h.callCtx()
	defer cancel()
	channel, err := h.slackRepository.CreateConversation(ctx, channelName)
	if err != nil {
		if repository.IsNameTaken(err) {
			h.notifyUser(req.DeclaredUserID, nameTakenMessage)
			return nil
		}
		return fmt.Errorf("failed to CreateConversation: %w", err)
	}

	summary := entity.Summary{
		Description: req.Description,
		Priority:    req.Priority,
		CommsLead:   req.CommsLead,
		TechLead:    req.TechLead,
		SupportLead: req.SupportLead,
	}

	// チャンネルIDに依存する操作はここから先すべて独立
	var eg errgroup.Group
	eg.Go(func() error {
		return h.inviteLeads(channel.ID, req.DeclaredUserID, req.Leads())
	})
	eg.Go(func() error {
		return h.setSummaryTopic(channel.ID, req.DeclaredUserID, summary.Encode())
	})
	eg.Go(func() error {
		return h.introduceIncident(channel.ID, req.TechLead)
	})
	for _, announcement := range h.repository.AnnouncementChannels(h.ctx) {
		announcement := announcement
		eg.Go(func() error {
			return h.notifyChannelOfOpen(announcement, channel.ID, req)
		})
	}
	fanOutErr := eg.Wait()

	// 部分失敗でもチャンネルは存在するのでレコードは必ず残す
	incident := &entity.Incident{
		ChannelID:      channel.ID,
		CallingChannel: req.CallingChannel,
		Title:          req.Title,
		Service:        req.Service,
		DeclaredUserID: req.DeclaredUserID,
		StartedAt:      h.now(),
	}
	sctx, scancel := h.callCtx()
	defer scancel()
	if err := h.repository.SaveIncident(sctx, incident); err != nil {
		return fmt.Errorf("failed to SaveIncident: %w", err)
	}

	return fanOutErr
}

// UpdateIncident はトピックとメンバー一覧を並行に読み、差分だけを適用する
func (h *IncidentHandler) UpdateIncident(channelID, userID string, update *entity.IncidentUpdateRequest) error {
	var currentTopic string
	var currentMembers []string

	var reads errgroup.Group
	reads.Go(func() error {
		ctx, cancel := h.callCtx()
		defer cancel()
		channel, err := h.slackRepository.ConversationInfo(ctx, channelID)
		if err != nil {
			return fmt.Errorf("failed to ConversationInfo: %w", err)
		}
		currentTopic = channel.Topic.Value
		return nil
	})
	reads.Go(func() error {
		ctx, cancel := h.callCtx()
		defer cancel()
		members, err := h.slackRepository.ConversationMembers(ctx, channelID)
		if err != nil {
			return fmt.Errorf("failed to ConversationMembers: %w", err)
		}
		currentMembers = members
		return nil
	})
	if err := reads.Wait(); err != nil {
		if repository.IsNotInChannel(err) {
			h.notifyUser(userID, notIncidentChannelMessage)
			return nil
		}
		return err
	}

	newTopic := entity.MergeSummary(currentTopic, *update)
	additions := entity.InviteAdditions(*update, currentMembers)

	var apply errgroup.Group
	if newTopic != currentTopic {
		apply.Go(func() error {
			return h.setSummaryTopic(channelID, userID, newTopic)
		})
		apply.Go(func() error {
			ctx, cancel := h.callCtx()
			defer cancel()
			if _, err := h.slackRepository.PostMessage(ctx, channelID, incidentUpdatedMessage); err != nil {
				return fmt.Errorf("failed to PostMessage: %w", err)
			}
			return nil
		})
	}
	if len(additions) > 0 {
		apply.Go(func() error {
			return h.inviteLeads(channelID, userID, additions)
		})
	}
	return apply.Wait()
}

// CloseIncident はインシデントチャンネルにクローズ宣言を投稿してピンし、
// 発端チャンネルが記録されていればそちらにも完了を知らせる。
// 戻り値はスラッシュコマンドへの同期応答文
func (h *IncidentHandler) CloseIncident(channelID, channelName, userID string) (string, error) {
	if !entity.IsIncidentChannel(channelName) {
		return notIncidentChannelMessage, nil
	}

	ctx, cancel := h.callCtx()
	defer cancel()
	ts, err := h.slackRepository.PostMessage(ctx, channelID, incidentClosedMessage)
	if err != nil {
		// アクセスできないチャンネルはガード失敗と同じ扱いに畳む
		if repository.IsNotInChannel(err) {
			return notIncidentChannelMessage, nil
		}
		return "", fmt.Errorf("failed to PostMessage: %w", err)
	}

	pctx, pcancel := h.callCtx()
	defer pcancel()
	if err := h.slackRepository.AddPin(pctx, channelID, ts); err != nil {
		slog.Error("Failed to AddPin", slog.Any("channelID", channelID), slog.Any("err", err))
	}

	// レコードが消えていてもクローズ自体は成功させる
	fctx, fcancel := h.callCtx()
	defer fcancel()
	incident, err := h.repository.FindIncidentByChannel(fctx, channelID)
	if err != nil {
		slog.Error("Failed to FindIncidentByChannel", slog.Any("channelID", channelID), slog.Any("err", err))
	}
	if incident != nil && incident.CallingChannel != "" {
		nctx, ncancel := h.callCtx()
		defer ncancel()
		text := fmt.Sprintf(":white_check_mark: <!channel> The incident in <#%s> has now closed.", channelID)
		if _, err := h.slackRepository.PostMessage(nctx, incident.CallingChannel, text); err != nil {
			slog.Error("Failed to notify calling channel", slog.Any("channelID", incident.CallingChannel), slog.Any("err", err))
		}
	}

	cctx, ccancel := h.callCtx()
	defer ccancel()
	if err := h.repository.CloseIncident(cctx, channelID); err != nil {
		slog.Error("Failed to CloseIncident", slog.Any("channelID", channelID), slog.Any("err", err))
	}

	return closeAckMessage, nil
}

func (h *IncidentHandler) inviteLeads(channelID, userID string, leads []string) error {
	if len(leads) == 0 {
		return nil
	}
	ctx, cancel := h.callCtx()
	defer cancel()
	err := h.slackRepository.InviteUsersToConversation(ctx, channelID, leads...)
	switch {
	case err == nil:
		return nil
	case repository.IsCantInviteSelf(err):
		h.notifyUser(userID, cantInviteSelfMessage)
		return nil
	case repository.IsUserNotFound(err):
		h.notifyUser(userID, userNotFoundMessage)
		return nil
	case repository.IsCantInvite(err):
		h.notifyUser(userID, cantInviteMessage)
		return nil
	default:
		return fmt.Errorf("failed to InviteUsersToConversation: %w", err)
	}
}

func (h *IncidentHandler) setSummaryTopic(channelID, userID, topic string) error {
	ctx, cancel := h.callCtx()
	defer cancel()
	err := h.slackRepository.SetTopicOfConversation(ctx, channelID, topic)
	if err != nil {
		if repository.IsTooLong(err) {
			h.notifyUser(userID, topicTooLongMessage)
			return nil
		}
		return fmt.Errorf("failed to SetTopicOfConversation: %w", err)
	}
	return nil
}

// オンボーディング。最初の案内はピンする
func (h *IncidentHandler) introduceIncident(channelID, techLead string) error {
	ctx, cancel := h.callCtx()
	defer cancel()
	welcome := fmt.Sprintf("Welcome to the incident channel. Please review the following docs:\n> <%s|Incident playbook> \n><%s|Incident categorisation>", h.playbookURL, h.categoriesURL)
	ts, err := h.slackRepository.PostMessage(ctx, channelID, welcome)
	if err != nil {
		return fmt.Errorf("failed to PostMessage: %w", err)
	}

	pctx, pcancel := h.callCtx()
	defer pcancel()
	if err := h.slackRepository.AddPin(pctx, channelID, ts); err != nil {
		slog.Error("Failed to AddPin", slog.Any("channelID", channelID), slog.Any("err", err))
	}

	template := fmt.Sprintf("Please make a copy of the <%s|incident template> and consider starting a video call.", h.templateURL)
	if techLead != "" {
		template = fmt.Sprintf("<@%s> please make a copy of the <%s|incident template> and consider starting a video call.", techLead, h.templateURL)
	}
	tctx, tcancel := h.callCtx()
	defer tcancel()
	if _, err := h.slackRepository.PostMessage(tctx, channelID, template); err != nil {
		return fmt.Errorf("failed to PostMessage: %w", err)
	}
	return nil
}

func (h *IncidentHandler) notifyChannelOfOpen(channel, incidentChannelID string, req *entity.IncidentRequest) error {
	text := fmt.Sprintf(":rotating_light: <!channel> A new incident has been opened :rotating_light:\n> *Title:* %s \n>*Priority:* %s\n>*Comms:* <#%s>",
		entity.Capitalize(req.Title), req.Priority, incidentChannelID)
	ctx, cancel := h.callCtx()
	defer cancel()
	if _, err := h.slackRepository.PostMessage(ctx, channel, text); err != nil {
		return fmt.Errorf("failed to notify %s: %w", channel, err)
	}
	return nil
}

// ユーザーへのエフェメラル通知。失敗してもライフサイクルは止めない
func (h *IncidentHandler) notifyUser(userID, text string) {
	if userID == "" {
		return
	}
	ctx, cancel := h.callCtx()
	defer cancel()
	if err := h.slackRepository.PostEphemeral(ctx, userID, userID, text); err != nil {
		slog.Error("Failed to PostEphemeral", slog.Any("userID", userID), slog.Any("err", err))
	}
}
