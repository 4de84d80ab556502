package handler

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) listEstablishments(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	establishments, err := h.establishmentService.List(ctx)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(establishments) == 0 {
		h.reply(chatID, "🏢 Заведений пока нет. Добавьте: /addestablishment название; адрес")
		return
	}

	current := h.chatState(ctx, chatID).EstablishmentID

	var b strings.Builder
	b.WriteString("🏢 Заведения:\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, e := range establishments {
		mark := ""
		if e.ID == current {
			mark = " ✅"
		}
		fmt.Fprintf(&b, "\n#%d %s%s", e.ID, e.Name, mark)
		if e.Address != "" {
			fmt.Fprintf(&b, "\n   %s", e.Address)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(e.Name, fmt.Sprintf("%s%d", callbackUse, e.ID)),
		))
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	h.client.Send(msg)
}

func (h *Handler) addEstablishment(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	name, address, err := parseEstablishmentArgs(args)
	if err != nil {
		h.reply(chatID, "📝 Формат: /addestablishment название; адрес")
		return
	}

	establishment, err := h.establishmentService.Create(ctx, name, address)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Заведение #%d %s создано. Выбрать: /use %d", establishment.ID, establishment.Name, establishment.ID))
}

func (h *Handler) useEstablishment(ctx context.Context, chatID int64, args string) {
	id, err := parseID(args)
	if err != nil {
		h.reply(chatID, "📝 Формат: /use ID. Список заведений: /establishments")
		return
	}

	establishments, err := h.establishmentService.List(ctx)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	for _, e := range establishments {
		if e.ID != id {
			continue
		}

		st := h.chatState(ctx, chatID)
		st.EstablishmentID = id
		st.WeekStart = ""
		st.PendingDelete = 0
		st.Retry = nil
		h.saveState(ctx, chatID, st)

		logrus.WithFields(logrus.Fields{"chat_id": chatID, "establishment_id": id}).Info("Establishment selected")
		h.reply(chatID, fmt.Sprintf("✅ Выбрано заведение: %s\nГрафик недели: /week", e.Name))
		return
	}

	h.reply(chatID, fmt.Sprintf("🔍 Заведение #%d не найдено", id))
}

func (h *Handler) showTeam(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	users, err := h.userService.List(ctx, establishmentID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(users) == 0 {
		h.reply(chatID, "👥 В заведении нет сотрудников. Пригласите: /invite email роль ФИО")
		return
	}

	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, formatUser(u))
	}
	h.reply(chatID, fmt.Sprintf("👥 Сотрудники (%d):\n\n%s", len(users), strings.Join(lines, "\n\n")))
}

func (h *Handler) inviteUser(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	user, err := parseInviteArgs(args)
	if err != nil {
		h.reply(chatID, "📝 Формат: /invite email роль ФИО\nРоли: employee, manager, admin")
		return
	}
	user.EstablishmentID = establishmentID

	if err := h.userService.Invite(ctx, &user); err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, "✅ Сотрудник приглашен:\n"+formatUser(user))
}

func (h *Handler) setRate(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.reply(chatID, "📝 Формат: /rate ID_сотрудника ставка\nПример: /rate 7 12,50")
		return
	}
	userID, err := parseID(parts[0])
	if err != nil {
		h.reply(chatID, "❌ Неверный ID сотрудника")
		return
	}
	rate, err := parseAmount(parts[1])
	if err != nil {
		h.reply(chatID, "❌ Ставка должна быть неотрицательным числом")
		return
	}

	user, err := h.userService.SetHourlyRate(ctx, userID, rate)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, "✅ Ставка обновлена:\n"+formatUser(*user))
}
