package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ajharbinger/comps-mao-pipeline/internal/logger"
	"github.com/ajharbinger/comps-mao-pipeline/internal/services"
	"github.com/ajharbinger/comps-mao-pipeline/internal/valuation"
	"github.com/ajharbinger/comps-mao-pipeline/pkg/config"
)

const usageText = "Usage:\n" +
	"/comp <address> [--condition excellent|fair|poor] [--fee 20000] [--mao aggressive|standard|hot]\n" +
	"Defaults if omitted → MAO: aggressive (65%), Condition: fair, Fee: 20000"

const aboutText = "📘 About CompsMAObot\n" +
	"• MAO tiers: aggressive 65%, standard 70%, hot 75% (applied to ARV).\n" +
	"• Defaults if you omit flags: MAO=aggressive, condition=fair, fee=$20,000.\n" +
	"• Rehab $/sf: Excellent $20, Fair $42.5, Poor $85 (× subject sqft).\n" +
	"• Command: /comp <address> [--condition excellent|fair|poor] [--fee 20000] [--mao aggressive|standard|hot]"

// Bot polls Telegram for /comp commands and forwards them to the comps API
type Bot struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
	baseURL    string
	log        logger.Logger
}

// New creates a bot against cfg.BotToken and cfg.APIBaseURL
func New(cfg *config.Config) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	return &Bot{
		api:        api,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    cfg.APIBaseURL,
		log:        logger.New("bot"),
	}, nil
}

// Run long-polls for updates until the context is canceled
func (b *Bot) Run(ctx context.Context) {
	b.log.Info("bot started", "username", b.api.Self.UserName)

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := b.api.GetUpdatesChan(updateCfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			switch update.Message.Command() {
			case "comp":
				b.handleComp(ctx, update.Message)
			case "about":
				b.reply(update.Message.Chat.ID, aboutText)
			}
		}
	}
}

func (b *Bot) handleComp(ctx context.Context, msg *tgbotapi.Message) {
	args := msg.CommandArguments()
	if args == "" {
		b.reply(msg.Chat.ID, usageText)
		return
	}

	req, err := ParseCommand(args)
	if err != nil {
		b.reply(msg.Chat.ID, err.Error())
		return
	}

	// Echo the values that will actually apply, defaults included
	condition := req.Condition
	if condition == "" {
		condition = "fair"
	}
	highlight := req.HighlightTier
	if highlight == "" {
		highlight = "aggressive"
	}
	fee := req.AssignmentFee
	if fee <= 0 {
		fee = services.DefaultAssignmentFee
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("Running comps for:\n%s\nMAO: %s • Condition: %s • Fee: %s\nPlease wait…",
		req.Address, highlight, condition, valuation.FormatDollars(fee)))

	resp, err := b.runComps(ctx, req)
	if err != nil {
		b.log.Error("run comps failed", err, "address", req.Address)
		b.reply(msg.Chat.ID, "Comp run failed: "+err.Error())
		return
	}

	if resp.PDFPath != "" {
		doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FilePath(resp.PDFPath))
		doc.Caption = "comps_report.pdf"
		if _, err := b.api.Send(doc); err != nil {
			b.log.Error("failed to send pdf", err, "path", resp.PDFPath)
		}
	}
	if resp.Summary != "" {
		b.reply(msg.Chat.ID, resp.Summary)
	}
}

// apiResponse is the wire shape of POST /api/v1/comps/run
type apiResponse struct {
	PDFPath string `json:"pdf_path"`
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

func (b *Bot) runComps(ctx context.Context, req services.RunCompsRequest) (*apiResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", b.baseURL+"/api/v1/comps/run", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return nil, fmt.Errorf("%s", out.Error)
		}
		return nil, fmt.Errorf("API returned status %d", httpResp.StatusCode)
	}
	return &out, nil
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("failed to send message", err, "chat_id", chatID)
	}
}
