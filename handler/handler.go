package handler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pyama86/YAIB/domain/repository"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// closeされないまま残ったインメモリレコードの回収期限
const memoryRecordTTL = 7 * 24 * time.Hour

func Handle(ctx context.Context, configPath string) error {
	webApi := slack.New(
		os.Getenv("SLACK_BOT_TOKEN"),
		slack.OptionAppLevelToken(os.Getenv("SLACK_APP_TOKEN")),
	)
	socketMode := socketmode.New(
		webApi,
	)
	authTest, authTestErr := webApi.AuthTest()
	if authTestErr != nil {
		fmt.Fprintf(os.Stderr, "SLACK_BOT_TOKEN is invalid: %v\n", authTestErr)
		os.Exit(1)
	}
	botID := authTest.UserID
	slog.Info("Bot ID", slog.String("bot_id", botID))

	cfgRepository, err := repository.NewConfigRepository(configPath)
	if err != nil {
		return err
	}

	var incidentRepository repository.IncidentRepository
	if cfgRepository.Store == "memory" {
		incidentRepository = repository.NewMemoryRepository(memoryRecordTTL)
	} else {
		incidentRepository, err = repository.NewDynamoDBRepository()
		if err != nil {
			return err
		}
	}

	slackRepository := repository.NewSlackRepository(webApi)
	repo := repository.NewRepository(incidentRepository, cfgRepository, cfgRepository)

	incidentHandler := NewIncidentHandler(ctx, repo, slackRepository, cfgRepository)
	commandHandler := NewCommandHandler(ctx, repo, slackRepository, incidentHandler)
	callbackHandler := NewCallbackHandler(incidentHandler, os.Getenv("SLACK_APP_ID"))
	eventHandler := NewEventHandler(ctx, slackRepository, botID, cfgRepository)

	go func() {
		for envelope := range socketMode.Events {
			switch envelope.Type {
			case socketmode.EventTypeSlashCommand:
				command, ok := envelope.Data.(slack.SlashCommand)
				if !ok {
					slog.Error("Failed to cast to SlashCommand")
					continue
				}
				text, err := commandHandler.Handle(&command)
				if err != nil {
					slog.Error("Failed to handle slash command", slog.Any("err", err))
					if text == "" {
						text = "Something went wrong. Please try again."
					}
				}
				if text != "" {
					socketMode.Ack(*envelope.Request, map[string]interface{}{
						"response_type": "ephemeral",
						"text":          text,
					})
				} else {
					socketMode.Ack(*envelope.Request)
				}
			case socketmode.EventTypeInteractive:
				socketMode.Ack(*envelope.Request)
				callback, ok := envelope.Data.(slack.InteractionCallback)
				if !ok {
					slog.Error("Failed to cast to InteractionCallback")
					continue
				}
				if err := callbackHandler.Handle(&callback); err != nil {
					slog.Error("Failed to handle callback", slog.Any("err", err))
				}
			case socketmode.EventTypeEventsAPI:
				socketMode.Ack(*envelope.Request)
				eventPayload, ok := envelope.Data.(slackevents.EventsAPIEvent)
				if !ok {
					slog.Error("Failed to cast to EventsAPIEvent")
					continue
				}

				switch eventPayload.Type {
				case slackevents.CallbackEvent:
					innerEvent := eventPayload.InnerEvent
					if err := eventHandler.Handle(&innerEvent); err != nil {
						slog.Error("Failed to handle event", slog.Any("err", err))
					}
				}
			}
		}
	}()

	return socketMode.Run()
}
