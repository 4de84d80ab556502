package handler

import (
	"context"
	"strings"
	"time"

	"planning-bot/internal/config"
	"planning-bot/internal/service"
	"planning-bot/internal/state"
	"planning-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Время на обработку одного обновления, включая запросы к бэкенду
const updateTimeout = 60 * time.Second

type Handler struct {
	client               *telegram.Client
	establishmentService *service.EstablishmentService
	userService          *service.UserService
	templateService      *service.TemplateService
	shiftService         *service.ShiftService
	absenceService       *service.AbsenceService
	planningService      *service.PlanningService
	states               state.Store
	settings             *config.Settings
}

func NewHandler(
	client *telegram.Client,
	establishmentService *service.EstablishmentService,
	userService *service.UserService,
	templateService *service.TemplateService,
	shiftService *service.ShiftService,
	absenceService *service.AbsenceService,
	planningService *service.PlanningService,
	states state.Store,
	settings *config.Settings,
) *Handler {
	if settings == nil {
		settings = &config.Settings{}
	}
	return &Handler{
		client:               client,
		establishmentService: establishmentService,
		userService:          userService,
		templateService:      templateService,
		shiftService:         shiftService,
		absenceService:       absenceService,
		planningService:      planningService,
		states:               states,
		settings:             settings,
	}
}

// HandleUpdates обрабатывает обновления до закрытия канала или отмены ctx
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	// Обработка callback query (для inline кнопок)
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(ctx, update.Message)
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Отвечаем на callback (убираем "часики" у кнопки)
	defer h.client.Send(tgbotapi.NewCallback(callback.ID, ""))

	switch {
	case strings.HasPrefix(data, callbackWeek):
		h.handleWeekCallback(ctx, callback)
		return
	case strings.HasPrefix(data, callbackUse):
		h.removeKeyboard(callback)
		h.useEstablishment(ctx, chatID, strings.TrimPrefix(data, callbackUse))
		return
	}

	// Остальные кнопки одноразовые
	h.removeKeyboard(callback)

	switch {
	case strings.HasPrefix(data, callbackDeleteShift):
		h.confirmDeleteShift(ctx, chatID, strings.TrimPrefix(data, callbackDeleteShift))
	case data == callbackCancelDelete:
		h.cancelDeleteShift(ctx, chatID)
	case data == callbackRetryAbsence:
		h.retryAbsence(ctx, chatID)
	case data == callbackCancelAbsence:
		h.dropAbsenceRetry(ctx, chatID)
	default:
		logrus.WithField("data", data).Warn("Unknown callback data")
	}
}

func (h *Handler) removeKeyboard(callback *tgbotapi.CallbackQuery) {
	edit := tgbotapi.NewEditMessageReplyMarkup(callback.Message.Chat.ID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.client.Send(edit)
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userName := ""
	if message.From != nil {
		userName = message.From.UserName
	}
	logrus.Infof("[%s] %s", userName, message.Text)

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	h.reply(message.Chat.ID, "Я понимаю только команды. Используйте /help для списка команд.")
}

func (h *Handler) reply(chatID int64, text string) {
	h.client.Send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) replyError(chatID int64, err error) {
	h.reply(chatID, errorText(err))
}

// chatState - состояние чата; при ошибке хранилища используется пустое
func (h *Handler) chatState(ctx context.Context, chatID int64) state.ChatState {
	st, err := h.states.Get(ctx, chatID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to load chat state")
	}
	return st
}

func (h *Handler) saveState(ctx context.Context, chatID int64, st state.ChatState) {
	if err := h.states.Save(ctx, chatID, st); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to save chat state")
	}
}

// establishmentID - выбранное в чате заведение; 0 и сообщение пользователю, если не выбрано
func (h *Handler) establishmentID(ctx context.Context, chatID int64) uint {
	id := h.chatState(ctx, chatID).EstablishmentID
	if id == 0 {
		h.reply(chatID, "🏢 Сначала выберите заведение: /establishments, затем /use ID")
	}
	return id
}
