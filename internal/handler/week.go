package handler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"planning-bot/internal/export"
	"planning-bot/internal/planning"
	"planning-bot/pkg/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Максимальная длина сообщения Telegram
const maxMessageLength = 4096

func (h *Handler) showWeek(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	date, err := parseOptionalDate(args)
	if err != nil {
		h.reply(chatID, "❌ Неверная дата. Используйте ГГГГ-ММ-ДД или ДД.ММ.ГГГГ")
		return
	}

	text, grid, err := h.renderWeek(ctx, establishmentID, date)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	st := h.chatState(ctx, chatID)
	st.WeekStart = grid.WeekStart.Format(timeutil.DateLayout)
	h.saveState(ctx, chatID, st)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = weekKeyboard(grid.WeekStart)
	h.client.Send(msg)
}

// handleWeekCallback листает график на неделю назад или вперед в том же сообщении
func (h *Handler) handleWeekCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	date, err := timeutil.ParseDate(strings.TrimPrefix(callback.Data, callbackWeek))
	if err != nil {
		logrus.WithError(err).WithField("data", callback.Data).Warn("Invalid week callback")
		return
	}

	text, grid, err := h.renderWeek(ctx, establishmentID, date)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	st := h.chatState(ctx, chatID)
	st.WeekStart = grid.WeekStart.Format(timeutil.DateLayout)
	h.saveState(ctx, chatID, st)

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID, text, weekKeyboard(grid.WeekStart))
	h.client.Send(edit)
}

func (h *Handler) renderWeek(ctx context.Context, establishmentID uint, date time.Time) (string, planning.WeekGrid, error) {
	grid, err := h.planningService.Week(ctx, establishmentID, date)
	if err != nil {
		return "", planning.WeekGrid{}, err
	}

	name := h.establishmentName(ctx, establishmentID)
	return truncate(formatWeekGrid(grid, name)), grid, nil
}

func (h *Handler) showStats(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	date, err := h.weekDate(ctx, chatID, args)
	if err != nil {
		h.reply(chatID, "❌ Неверная дата. Используйте ГГГГ-ММ-ДД или ДД.ММ.ГГГГ")
		return
	}

	grid, err := h.planningService.Week(ctx, establishmentID, date)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, truncate(formatStats(grid)))
}

func (h *Handler) exportWeek(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	date, err := h.weekDate(ctx, chatID, args)
	if err != nil {
		h.reply(chatID, "❌ Неверная дата. Используйте ГГГГ-ММ-ДД или ДД.ММ.ГГГГ")
		return
	}

	grid, err := h.planningService.Week(ctx, establishmentID, date)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	workbook, err := export.NewWeekWorkbook(grid, h.establishmentName(ctx, establishmentID))
	if err != nil {
		logrus.WithError(err).Error("Failed to build workbook")
		h.replyError(chatID, err)
		return
	}
	defer workbook.Close()

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		logrus.WithError(err).Error("Failed to write workbook")
		h.replyError(chatID, err)
		return
	}

	name := fmt.Sprintf("planning_%s.xlsx", grid.WeekStart.Format(timeutil.DateLayout))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("📎 График недели с %s", grid.WeekStart.Format("02.01.2006"))
	h.client.Send(doc)
}

// weekDate - дата из аргумента, иначе последняя открытая в чате неделя, иначе сегодня
func (h *Handler) weekDate(ctx context.Context, chatID int64, args string) (time.Time, error) {
	if strings.TrimSpace(args) != "" {
		return timeutil.ParseDate(args)
	}
	if week := h.chatState(ctx, chatID).WeekStart; week != "" {
		if date, err := timeutil.ParseDate(week); err == nil {
			return date, nil
		}
	}
	return timeutil.Today(), nil
}

func (h *Handler) establishmentName(ctx context.Context, id uint) string {
	establishments, err := h.establishmentService.List(ctx)
	if err == nil {
		for _, e := range establishments {
			if e.ID == id {
				return e.Name
			}
		}
	}
	return fmt.Sprintf("Заведение #%d", id)
}

func weekKeyboard(weekStart time.Time) tgbotapi.InlineKeyboardMarkup {
	prev := weekStart.AddDate(0, 0, -7).Format(timeutil.DateLayout)
	next := weekStart.AddDate(0, 0, 7).Format(timeutil.DateLayout)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Пред. неделя", callbackWeek+prev),
			tgbotapi.NewInlineKeyboardButtonData("След. неделя ➡️", callbackWeek+next),
		),
	)
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxMessageLength {
		return text
	}
	return string(runes[:maxMessageLength-1]) + "…"
}
