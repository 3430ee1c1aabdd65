package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("https://api.telegram.org/bot%s", token),
	}
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if !apiResp.OK {
		return nil, fmt.Errorf("telegram: %s", apiResp.Description)
	}

	return apiResp.Result, nil
}

func (c *Client) SendMessage(chatID int64, text, parseMode string, replyMarkup interface{}) (int64, error) {
	req := SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	}

	if replyMarkup != nil {
		rm, err := json.Marshal(replyMarkup)
		if err != nil {
			return 0, err
		}
		req.ReplyMarkup = rm
	}

	result, err := c.call(context.Background(), "sendMessage", req)
	if err != nil {
		return 0, err
	}

	var msg MessageResult
	json.Unmarshal(result, &msg)
	return msg.MessageID, nil
}

// SendVoice streams an audio clip by URL. Callers bound the upload with
// ctx since Telegram fetches the remote file before responding.
func (c *Client) SendVoice(ctx context.Context, chatID int64, voiceURL string) error {
	req := SendVoiceRequest{ChatID: chatID, Voice: voiceURL}
	_, err := c.call(ctx, "sendVoice", req)
	return err
}

func (c *Client) AnswerCallbackQuery(callbackID, text string, showAlert bool) error {
	req := AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	}
	_, err := c.call(context.Background(), "answerCallbackQuery", req)
	return err
}

func (c *Client) SetWebhook(url, secretToken string) error {
	req := SetWebhookRequest{URL: url, SecretToken: secretToken}
	_, err := c.call(context.Background(), "setWebhook", req)
	return err
}

func (c *Client) DeleteWebhook() error {
	_, err := c.call(context.Background(), "deleteWebhook", struct{}{})
	return err
}
