package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Client struct {
	Bot          *tgbotapi.BotAPI
	UpdateConfig tgbotapi.UpdateConfig
}

func NewClient(token string, debug bool) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	bot.Debug = debug

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updateConfig.AllowedUpdates = []string{"message", "callback_query"}

	return &Client{
		Bot:          bot,
		UpdateConfig: updateConfig,
	}, nil
}

// Updates - канал обновлений long polling
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	return c.Bot.GetUpdatesChan(c.UpdateConfig)
}

// Send отправляет сообщение; ошибка только логируется, пользователю ответить уже нельзя
func (c *Client) Send(msg tgbotapi.Chattable) {
	// Ответ на callback не возвращает сообщение, поэтому используется Request
	if _, ok := msg.(tgbotapi.CallbackConfig); ok {
		if _, err := c.Bot.Request(msg); err != nil {
			logrus.WithError(err).Warn("Failed to answer callback")
		}
		return
	}

	if _, err := c.Bot.Send(msg); err != nil {
		logrus.WithError(err).Error("Failed to send telegram message")
	}
}

func (c *Client) Stop() {
	c.Bot.StopReceivingUpdates()
}
