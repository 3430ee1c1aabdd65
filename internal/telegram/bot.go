package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Bot owns the webhook lifecycle and fans incoming updates out to the
// command handler.
type Bot struct {
	client        *Client
	handler       *UpdateHandler
	webhookSecret string
}

func NewBot(client *Client, handler *UpdateHandler, webhookSecret string) *Bot {
	return &Bot{
		client:        client,
		handler:       handler,
		webhookSecret: webhookSecret,
	}
}

func (b *Bot) Start(webhookBaseURL string) error {
	webhookURL := fmt.Sprintf("%s/webhook/bot", webhookBaseURL)
	if err := b.client.SetWebhook(webhookURL, b.webhookSecret); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	log.Printf("[bot] webhook registered: %s", webhookURL)
	return nil
}

func (b *Bot) Stop() {
	if err := b.client.DeleteWebhook(); err != nil {
		log.Printf("[bot] delete webhook: %v", err)
	}
	log.Println("[bot] stopped")
}

func (b *Bot) HandleWebhook(c *gin.Context) {
	if b.webhookSecret != "" {
		headerSecret := c.GetHeader("X-Telegram-Bot-Api-Secret-Token")
		if headerSecret != b.webhookSecret {
			c.Status(http.StatusUnauthorized)
			return
		}
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var upd Update
	if err := json.Unmarshal(body, &upd); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	go b.handler.Handle(upd)

	c.Status(http.StatusOK)
}
