package handler

import (
	"context"

	"planning-bot/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()
	metrics.IncBotCommand(command)

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)

	// Заведения и сотрудники
	case "establishments":
		h.listEstablishments(ctx, message)
	case "addestablishment":
		h.addEstablishment(ctx, message, args)
	case "use":
		h.useEstablishment(ctx, message.Chat.ID, args)
	case "team":
		h.showTeam(ctx, message)
	case "invite":
		h.inviteUser(ctx, message, args)
	case "rate":
		h.setRate(ctx, message, args)

	// Планирование
	case "week":
		h.showWeek(ctx, message, args)
	case "stats":
		h.showStats(ctx, message, args)
	case "export":
		h.exportWeek(ctx, message, args)

	// Шаблоны
	case "templates":
		h.listTemplates(ctx, message)
	case "addtemplate":
		h.addTemplate(ctx, message, args)
	case "deltemplate":
		h.deleteTemplate(ctx, message, args)
	case "apply":
		h.applyTemplate(ctx, message, args)

	// Смены и отсутствия
	case "shift":
		h.addShift(ctx, message, args)
	case "editshift":
		h.editShift(ctx, message, args)
	case "delshift":
		h.deleteShift(ctx, message, args)
	case "absence":
		h.addAbsence(ctx, message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

const helpText = `📋 Доступные команды:

🏢 Заведения:
/establishments - Список заведений
/addestablishment название; адрес - Добавить заведение
/use ID - Выбрать заведение для работы в этом чате

👥 Команда:
/team - Сотрудники заведения
/invite email роль ФИО - Пригласить сотрудника (employee, manager, admin)
/rate ID_сотрудника ставка - Изменить почасовую ставку
    Пример: /rate 7 12,50

📅 Планирование:
/week [дата] - График недели
/stats [дата] - Часы и стоимость за неделю
/export [дата] - Выгрузить неделю в Excel

🧩 Шаблоны смен:
/templates - Шаблоны заведения
/addtemplate название ЧЧ:ММ ЧЧ:ММ должность [дни]
    Пример: /addtemplate Утро 09:00 17:00 Бар пн-пт
/deltemplate ID - Удалить шаблон
/apply ID_шаблона ID_сотрудника дата
    Пример: /apply 3 7 04.03.2024

⏰ Смены:
/shift ID_сотрудника дата ЧЧ:ММ ЧЧ:ММ [должность]
    Пример: /shift 7 04.03.2024 09:00 17:00 Бар
/editshift ID_смены дата ЧЧ:ММ ЧЧ:ММ [должность]
/delshift ID_смены - Удалить смену

🌴 Отсутствия:
/absence ID_сотрудника тип количество начало [конец]
    Типы: vacation, rtt, sick, unpaid, other
    Количество: 1 - полный день, 0,5 - половина, "-" - не указано
    Пример: /absence 7 sick 1 04.03.2024 06.03.2024

💡 Даты: ГГГГ-ММ-ДД, ДД.ММ.ГГГГ или ДД.ММ
Переработка отмечается, если за неделю больше 35 часов.`

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, helpText)
}
