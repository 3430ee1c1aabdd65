package telegram

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"guess-song-backend/internal/game"
)

// Messenger adapts the bot client to the engine's outbound interface.
// Group IDs are the decimal chat id.
type Messenger struct {
	client *Client
}

func NewMessenger(client *Client) *Messenger {
	return &Messenger{client: client}
}

func (m *Messenger) SendClip(groupID, audioURL string, timeout time.Duration) game.ClipResult {
	chatID, err := parseChatID(groupID)
	if err != nil {
		return game.ClipFailed
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err = m.client.SendVoice(ctx, chatID, audioURL)
	switch {
	case err == nil:
		return game.ClipDelivered
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("[telegram] voice send to %s timed out, degrading to link", groupID)
		return game.ClipDegraded
	default:
		log.Printf("[telegram] voice send to %s failed: %v", groupID, err)
		return game.ClipFailed
	}
}

func (m *Messenger) SendText(groupID, text string) {
	chatID, err := parseChatID(groupID)
	if err != nil {
		return
	}
	if _, err := m.client.SendMessage(chatID, text, "", nil); err != nil {
		log.Printf("[telegram] send to %s failed: %v", groupID, err)
	}
}

func parseChatID(groupID string) (int64, error) {
	return strconv.ParseInt(groupID, 10, 64)
}
