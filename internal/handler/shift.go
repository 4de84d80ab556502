package handler

import (
	"context"
	"errors"
	"fmt"

	"planning-bot/internal/planning"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) addShift(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parsed, err := parseShiftArgs(args)
	if err != nil {
		if errors.Is(err, errUsage) {
			h.reply(chatID, "📝 Формат: /shift ID_сотрудника дата ЧЧ:ММ ЧЧ:ММ [должность]\nПример: /shift 7 04.03.2024 09:00 17:00 Бар")
			return
		}
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	shift, err := h.shiftService.Create(ctx, planning.WorkDraft{
		UserID:   parsed.ID,
		Start:    parsed.Start,
		End:      parsed.End,
		Position: parsed.Position,
	})
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Смена #%d создана:\n%s %s (%s)",
		shift.ID, formatDay(parsed.Start), shift.FormatTime(), shift.Duration()))
}

// editShift полностью заменяет смену, тип и сотрудник сохраняются
func (h *Handler) editShift(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	parsed, err := parseShiftArgs(args)
	if err != nil {
		if errors.Is(err, errUsage) {
			h.reply(chatID, "📝 Формат: /editshift ID_смены дата ЧЧ:ММ ЧЧ:ММ [должность]")
			return
		}
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	snap, err := h.planningService.Refresh(ctx, establishmentID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	current, ok := snap.Shift(parsed.ID)
	if !ok {
		h.reply(chatID, fmt.Sprintf("🔍 Смена #%d не найдена в выбранном заведении", parsed.ID))
		return
	}

	position := parsed.Position
	if position == "" {
		position = current.Position
	}

	var draft planning.ShiftDraft
	if current.IsWork() {
		draft = planning.WorkDraft{
			UserID:   current.UserID,
			Start:    parsed.Start,
			End:      parsed.End,
			Position: position,
		}
	} else {
		draft = planning.AbsenceDraft{
			UserID:   current.UserID,
			Type:     current.Type,
			Quantity: current.Quantity,
			Position: position,
			Start:    parsed.Start,
			End:      parsed.End,
		}
	}

	shift, err := h.shiftService.Replace(ctx, parsed.ID, draft)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Смена #%d обновлена:\n%s %s", shift.ID, formatDay(parsed.Start), shift.FormatTime()))
}

func (h *Handler) deleteShift(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	id, err := parseID(args)
	if err != nil {
		h.reply(chatID, "📝 Формат: /delshift ID_смены. ID видны в /week")
		return
	}

	if !h.settings.ShouldConfirmDelete() {
		h.removeShift(ctx, chatID, id)
		return
	}

	st := h.chatState(ctx, chatID)
	st.PendingDelete = id
	h.saveState(ctx, chatID, st)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⚠️ Удалить смену #%d? Это действие нельзя отменить.", id))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", fmt.Sprintf("%s%d", callbackDeleteShift, id)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", callbackCancelDelete),
		),
	)
	h.client.Send(msg)
}

func (h *Handler) confirmDeleteShift(ctx context.Context, chatID int64, raw string) {
	id, err := parseID(raw)
	if err != nil {
		return
	}

	st := h.chatState(ctx, chatID)
	if st.PendingDelete != id {
		logrus.WithFields(logrus.Fields{"chat_id": chatID, "shift_id": id}).Warn("Stale delete confirmation")
		h.reply(chatID, "⌛ Подтверждение устарело. Повторите /delshift")
		return
	}
	st.PendingDelete = 0
	h.saveState(ctx, chatID, st)

	h.removeShift(ctx, chatID, id)
}

func (h *Handler) removeShift(ctx context.Context, chatID int64, id uint) {
	if err := h.shiftService.Delete(ctx, id); err != nil {
		h.replyError(chatID, err)
		return
	}
	h.reply(chatID, fmt.Sprintf("✅ Смена #%d удалена", id))
}

func (h *Handler) cancelDeleteShift(ctx context.Context, chatID int64) {
	st := h.chatState(ctx, chatID)
	st.PendingDelete = 0
	h.saveState(ctx, chatID, st)

	h.reply(chatID, "❌ Удаление смены отменено.")
}
