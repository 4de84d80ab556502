package handler

import (
	"context"
	"errors"
	"time"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/service"
	"planning-bot/internal/state"
	"planning-bot/pkg/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const absenceUsage = `📝 Формат: /absence ID_сотрудника тип количество начало [конец]

Типы: vacation (отпуск), rtt (отгул), sick (больничный), unpaid (за свой счет), other
Количество на день: 1 - полный день, 0,5 - половина, "-" - не указано

Пример: /absence 7 sick 1 04.03.2024 06.03.2024
→ больничный на 3 дня, каждый день отдельной записью 09:00-17:00`

// addAbsence создает отсутствие по дням. При частичной неудаче предлагает повторить неудачные дни
func (h *Handler) addAbsence(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parsed, err := parseAbsenceArgs(args)
	if err != nil {
		if errors.Is(err, errUsage) {
			h.reply(chatID, absenceUsage)
			return
		}
		if planning.IsValidationError(err) {
			h.replyError(chatID, err)
			return
		}
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	req := service.AbsenceRequest{
		UserID:   parsed.UserID,
		Type:     parsed.Type,
		Quantity: parsed.Quantity,
		Position: h.absenceService.Label(parsed.Type),
		Start:    parsed.Start,
		End:      parsed.End,
	}

	result, err := h.absenceService.Create(ctx, req)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reportAbsence(ctx, chatID, req, result)
}

func (h *Handler) retryAbsence(ctx context.Context, chatID int64) {
	st := h.chatState(ctx, chatID)
	if st.Retry == nil || len(st.Retry.Days) == 0 {
		h.reply(chatID, "ℹ️ Нет дней для повторной отправки")
		return
	}

	req, days, err := retryRequest(st.Retry)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Invalid stored absence retry")
		h.dropAbsenceRetry(ctx, chatID)
		return
	}

	result, err := h.absenceService.RetryDays(ctx, req, days)
	if err != nil {
		st.Retry = nil
		h.saveState(ctx, chatID, st)
		h.replyError(chatID, err)
		return
	}

	h.reportAbsence(ctx, chatID, req, result)
}

func (h *Handler) dropAbsenceRetry(ctx context.Context, chatID int64) {
	st := h.chatState(ctx, chatID)
	st.Retry = nil
	h.saveState(ctx, chatID, st)
	h.reply(chatID, "Повторная отправка отменена.")
}

// reportAbsence показывает итог и запоминает неудачные дни для повтора
func (h *Handler) reportAbsence(ctx context.Context, chatID int64, req service.AbsenceRequest, result service.BatchResult) {
	st := h.chatState(ctx, chatID)
	msg := tgbotapi.NewMessage(chatID, truncate(formatBatchResult(result)))

	if failed := result.Failed(); len(failed) > 0 {
		days := make([]time.Time, 0, len(failed))
		for _, o := range failed {
			days = append(days, o.Day())
		}
		st.Retry = newAbsenceRetry(req, days)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔁 Повторить неудачные дни", callbackRetryAbsence),
				tgbotapi.NewInlineKeyboardButtonData("Отмена", callbackCancelAbsence),
			),
		)
	} else {
		st.Retry = nil
	}

	h.saveState(ctx, chatID, st)
	h.client.Send(msg)
}

func newAbsenceRetry(req service.AbsenceRequest, days []time.Time) *state.AbsenceRetry {
	retry := &state.AbsenceRetry{
		UserID:   req.UserID,
		Type:     string(req.Type),
		Position: req.Position,
		Days:     make([]string, 0, len(days)),
	}
	if req.Quantity.Valid {
		retry.Quantity = req.Quantity.Decimal.String()
	}
	for _, d := range days {
		retry.Days = append(retry.Days, d.Format(timeutil.DateLayout))
	}
	return retry
}

func retryRequest(retry *state.AbsenceRetry) (service.AbsenceRequest, []time.Time, error) {
	quantity, err := planning.ParseQuantity(retry.Quantity)
	if err != nil {
		return service.AbsenceRequest{}, nil, err
	}

	days := make([]time.Time, 0, len(retry.Days))
	for _, raw := range retry.Days {
		d, err := timeutil.ParseDate(raw)
		if err != nil {
			return service.AbsenceRequest{}, nil, err
		}
		days = append(days, d)
	}

	req := service.AbsenceRequest{
		UserID:   retry.UserID,
		Type:     models.ShiftType(retry.Type),
		Quantity: quantity,
		Position: retry.Position,
	}
	if len(days) > 0 {
		req.Start, req.End = days[0], days[len(days)-1]
	}
	return req, days, nil
}
