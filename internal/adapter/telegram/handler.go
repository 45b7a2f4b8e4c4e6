package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/leadreports/lead-report-bot/infrastructure/repository"
	"github.com/leadreports/lead-report-bot/internal/config"
	"github.com/leadreports/lead-report-bot/internal/domain"
	"github.com/leadreports/lead-report-bot/internal/usecases/ingesting"
	"github.com/leadreports/lead-report-bot/internal/usecases/reporting"
)

// Handler drives the long-polling update loop: lead ingestion from group
// messages and the /report command surface.
type Handler struct {
	bot           *tgbotapi.BotAPI
	reporter      reporting.Reporter
	leadParser    *ingesting.Parser
	leadRepo      repository.LeadRepository
	adminIDs      map[int64]struct{}
	loc           *time.Location
	updateTimeout int

	chatMutex    sync.Mutex
	reportChatID int64
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	reporter reporting.Reporter,
	leadParser *ingesting.Parser,
	leadRepo repository.LeadRepository,
	cfg *config.Config,
	loc *time.Location,
) *Handler {
	return &Handler{
		bot:           bot,
		reporter:      reporter,
		leadParser:    leadParser,
		leadRepo:      leadRepo,
		adminIDs:      ParseAdminIDs(cfg.Telegram.AdminChatIDs),
		loc:           loc,
		updateTimeout: cfg.Telegram.UpdateTimeout,
		reportChatID:  cfg.Telegram.ReportChatID,
	}
}

// ParseAdminIDs parses the comma-separated chat-ID allowlist.
func ParseAdminIDs(raw string) map[int64]struct{} {
	ids := map[int64]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Run consumes updates until the context is canceled.
func (h *Handler) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.updateTimeout
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	h.bindReportChat(msg.Chat.ID)

	switch msg.Command() {
	case "report":
		if !h.authorizedChat(msg.Chat.ID) {
			logrus.WithField("chat_id", msg.Chat.ID).Warn("telegram: report command from unlisted chat")
			h.sendText(msg.Chat.ID, accessDeniedText)
			return
		}
		h.handleReport(ctx, msg.Chat.ID, msg.CommandArguments())
	case "help", "start":
		h.sendText(msg.Chat.ID, helpText)
	default:
		h.ingestLead(ctx, msg)
	}
}

// authorizedChat reports whether the chat may run the report command. An
// empty allowlist leaves the command open, matching a single-group setup
// where the group itself is the boundary.
func (h *Handler) authorizedChat(chatID int64) bool {
	if len(h.adminIDs) == 0 {
		return true
	}
	_, ok := h.adminIDs[chatID]
	return ok
}

// bindReportChat remembers the first chat seen when no report chat is
// configured, as the original bot did.
func (h *Handler) bindReportChat(chatID int64) {
	h.chatMutex.Lock()
	defer h.chatMutex.Unlock()
	if h.reportChatID == 0 {
		h.reportChatID = chatID
		logrus.WithField("chat_id", chatID).Info("telegram: report chat bound")
	}
}

func (h *Handler) handleReport(ctx context.Context, chatID int64, args string) {
	report, err := h.reporter.BuildReport(ctx, strings.TrimSpace(args), time.Now().In(h.loc))
	if err != nil {
		h.sendText(chatID, errorMessage(err))
		return
	}

	h.sendMarkdown(chatID, RenderReport(report))

	if !report.Empty() {
		h.sendCityChart(chatID, report)
	}
}

func (h *Handler) ingestLead(ctx context.Context, msg *tgbotapi.Message) {
	lead, err := h.leadParser.Parse(msg.Text, time.Unix(int64(msg.Date), 0))
	if err != nil {
		logrus.WithError(err).Error("telegram: lead parse failed")
		return
	}
	if lead == nil {
		return
	}

	if err := h.leadRepo.Save(ctx, lead); err != nil {
		logrus.WithFields(logrus.Fields{
			"lead_id": lead.ID,
			"error":   err.Error(),
		}).Error("telegram: lead save failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"lead_id":  lead.ID,
		"location": lead.Location,
		"platform": lead.Platform,
	}).Info("telegram: lead saved")
}

// SendDailyReport implements scheduler.ReportSender.
func (h *Handler) SendDailyReport(_ context.Context, report *domain.Report) error {
	h.chatMutex.Lock()
	chatID := h.reportChatID
	h.chatMutex.Unlock()

	if chatID == 0 {
		return errors.New("report chat is not bound yet")
	}

	msg := tgbotapi.NewMessage(chatID, RenderReport(report))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err != nil {
		return err
	}

	if !report.Empty() {
		h.sendCityChart(chatID, report)
	}
	return nil
}

func (h *Handler) sendCityChart(chatID int64, report *domain.Report) {
	png, err := RenderCityChart(report)
	if err != nil {
		logrus.WithError(err).Warn("telegram: city chart rendering failed")
		return
	}

	name := "cities_" + strconv.FormatInt(time.Now().UnixNano(), 10) + ".png"
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: png})
	if _, err := h.bot.Send(photo); err != nil {
		logrus.WithError(err).Warn("telegram: city chart send failed")
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		logrus.WithError(err).Warn("telegram: send failed")
	}
}

func (h *Handler) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err != nil {
		logrus.WithError(err).Warn("telegram: send failed")
	}
}
