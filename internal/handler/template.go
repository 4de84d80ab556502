package handler

import (
	"context"
	"fmt"
	"strings"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/pkg/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) listTemplates(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	templates, err := h.templateService.List(ctx, establishmentID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(templates) == 0 {
		h.reply(chatID, "🧩 Шаблонов пока нет. Добавьте: /addtemplate название ЧЧ:ММ ЧЧ:ММ должность [дни]")
		return
	}

	lines := make([]string, 0, len(templates))
	for _, t := range templates {
		lines = append(lines, formatTemplate(t))
	}
	h.reply(chatID, truncate("🧩 Шаблоны смен:\n\n"+strings.Join(lines, "\n\n")))
}

func (h *Handler) addTemplate(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	tpl, err := parseTemplateArgs(args)
	if err != nil {
		h.reply(chatID, `📝 Формат: /addtemplate название ЧЧ:ММ ЧЧ:ММ должность [дни]
Дни: 0-6 (0 = понедельник) или пн,вт,...; диапазон пн-пт. По умолчанию все дни.
Пример: /addtemplate Утро 09:00 17:00 Бар пн-пт`)
		return
	}
	tpl.EstablishmentID = establishmentID

	created, err := h.templateService.Create(ctx, tpl)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, "✅ Шаблон создан:\n"+formatTemplate(*created))
}

func (h *Handler) deleteTemplate(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	id, err := parseID(args)
	if err != nil {
		h.reply(chatID, "📝 Формат: /deltemplate ID. Список: /templates")
		return
	}

	if err := h.templateService.Delete(ctx, id); err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Шаблон #%d удален", id))
}

// applyTemplate создает смену по шаблону. День, не отмеченный в шаблоне, не блокирует создание
func (h *Handler) applyTemplate(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	establishmentID := h.establishmentID(ctx, chatID)
	if establishmentID == 0 {
		return
	}

	usage := "📝 Формат: /apply ID_шаблона ID_сотрудника дата\nПример: /apply 3 7 04.03.2024"
	parts := strings.Fields(args)
	if len(parts) != 3 {
		h.reply(chatID, usage)
		return
	}
	templateID, err := parseID(parts[0])
	if err != nil {
		h.reply(chatID, usage)
		return
	}
	userID, err := parseID(parts[1])
	if err != nil {
		h.reply(chatID, usage)
		return
	}
	date, err := timeutil.ParseDate(parts[2])
	if err != nil {
		h.reply(chatID, "❌ Неверная дата. Используйте ГГГГ-ММ-ДД или ДД.ММ.ГГГГ")
		return
	}

	templates, err := h.templateService.List(ctx, establishmentID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	var tpl *models.ShiftTemplate
	for i := range templates {
		if templates[i].ID == templateID {
			tpl = &templates[i]
			break
		}
	}
	if tpl == nil {
		h.reply(chatID, fmt.Sprintf("🔍 Шаблон #%d не найден в выбранном заведении", templateID))
		return
	}

	shift, applicable, err := h.shiftService.ApplyTemplate(ctx, *tpl, userID, date)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	text := fmt.Sprintf("✅ Смена #%d создана по шаблону %s:\n%s %s",
		shift.ID, tpl.Name, formatDay(date), shift.FormatTime())
	if !applicable {
		text += fmt.Sprintf("\n⚠️ Шаблон не предназначен для этого дня (дни шаблона: %s)", planning.ApplicableDaysLabel(*tpl))
	}
	h.reply(chatID, text)
}
