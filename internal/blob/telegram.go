package blob

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"voice_courier/internal/domain"
)

// fileResolver turns a Telegram file id into a download URL.
type fileResolver interface {
	GetFileDirectURL(fileID string) (string, error)
	GetMe() (tgbotapi.User, error)
}

// Telegram downloads voice messages by their Telegram file id.
type Telegram struct {
	files  fileResolver
	client *http.Client
}

func NewTelegram(botToken string, timeout time.Duration) (*Telegram, error) {
	if botToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	client := &http.Client{Timeout: timeout}

	// Built by hand: the library constructor calls getMe and would fail offline.
	bot := &tgbotapi.BotAPI{Token: botToken, Client: client, Buffer: 100}
	bot.SetAPIEndpoint(tgbotapi.APIEndpoint)

	return newTelegram(bot, client), nil
}

func newTelegram(files fileResolver, client *http.Client) *Telegram {
	return &Telegram{files: files, client: client}
}

// Check validates the bot token against the Bot API.
func (t *Telegram) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.files.GetMe(); err != nil {
		return fmt.Errorf("telegram getMe: %w", err)
	}
	return nil
}

func (t *Telegram) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	url, err := t.files.GetFileDirectURL(fileID)
	if err != nil {
		return nil, &domain.BlobFetchError{Ref: fileID, Err: fmt.Errorf("resolve file: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.BlobFetchError{Ref: fileID, Err: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &domain.BlobFetchError{Ref: fileID, Err: fmt.Errorf("download file: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.BlobFetchError{Ref: fileID, Err: fmt.Errorf("download file: status %d", resp.StatusCode)}
	}

	return readAll(fileID, resp.Body)
}
