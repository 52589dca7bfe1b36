// Package bot serves the quiz converter over Telegram long polling.
package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"quizdoc/internal/pipeline"
	"quizdoc/internal/question"
	"quizdoc/internal/render"
)

// maxMessageRunes keeps replies under the Telegram message limit.
const maxMessageRunes = 3900

const failureReply = "Sorry, something went wrong while processing your request. Please try again."

const usage = "Send a quiz document (pdf, docx, odt, html, md, txt) and I will send it back " +
	"regrouped by question type. You can also paste the text directly.\n\n" +
	"Sections are recognised by headings such as \"Multiple Choice\", \"True or False\", " +
	"\"Short Answer\" and \"Long Answer\"."

// API is the subset of the Telegram client the bot uses.
type API interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Fetcher downloads a file URL.
type Fetcher func(ctx context.Context, fileURL string) ([]byte, error)

// Config wires a Bot.
type Config struct {
	API      API
	Pipeline *pipeline.Pipeline
	Format   render.Format
	Title    string
	Logger   *slog.Logger
	Fetch    Fetcher
	// MaxFileSize rejects larger documents before download.
	MaxFileSize int64
}

// Bot answers Telegram updates.
type Bot struct {
	api      API
	pipeline *pipeline.Pipeline
	format   render.Format
	title    string
	logger   *slog.Logger
	fetch    Fetcher
	maxSize  int64
}

// New creates a bot.
func New(cfg Config) (*Bot, error) {
	if cfg.API == nil {
		return nil, errors.New("bot: telegram api is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Pipeline == nil {
		cfg.Pipeline = pipeline.New(pipeline.Config{Logger: cfg.Logger})
	}
	if cfg.Format == "" {
		cfg.Format = render.FormatPDF
	}
	if cfg.Fetch == nil {
		cfg.Fetch = httpFetch
	}
	return &Bot{
		api:      cfg.API,
		pipeline: cfg.Pipeline,
		format:   cfg.Format,
		title:    cfg.Title,
		logger:   cfg.Logger,
		fetch:    cfg.Fetch,
		maxSize:  cfg.MaxFileSize,
	}, nil
}

// Connect creates the Telegram client for token.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("bot: telegram token is empty")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	return api, nil
}

// Run long-polls for updates until ctx ends.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0
	baseDelay := time.Second
	delay := baseDelay
	maxDelay := 15 * time.Second
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30
		updates, err := b.api.GetUpdates(u)
		if err != nil {
			b.logger.Warn("polling failed", "err", err, "retry_in", delay)
			if !sleep(ctx, delay) {
				return nil
			}
			delay = min(delay*2, maxDelay)
			continue
		}
		delay = baseDelay
		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			if err := b.Handle(ctx, upd); err != nil {
				b.logger.Error("update failed", "update_id", upd.UpdateID, "err", err)
			}
		}
		if len(updates) == 0 && !sleep(ctx, 200*time.Millisecond) {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Handle processes one update.
func (b *Bot) Handle(ctx context.Context, upd tgbotapi.Update) error {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}
	chatID := msg.Chat.ID
	switch {
	case msg.IsCommand():
		switch msg.Command() {
		case "start", "help":
			return b.reply(chatID, usage)
		default:
			return b.reply(chatID, "Unknown command. Send /help for usage.")
		}
	case msg.Document != nil:
		return b.handleDocument(ctx, chatID, msg.Document)
	case strings.TrimSpace(msg.Text) != "":
		return b.handleText(ctx, chatID, msg.Text)
	default:
		return nil
	}
}

func (b *Bot) handleText(ctx context.Context, chatID int64, text string) error {
	out, err := b.pipeline.ProcessText(ctx, fmt.Sprintf("telegram:%d", chatID), text)
	if err != nil {
		return b.fail(chatID, err)
	}
	if len(out.Questions()) == 0 {
		return b.reply(chatID, "No questions found. Check that the text has section headings.")
	}
	var buf bytes.Buffer
	if err := render.Write(&buf, render.FormatText, render.Document{Title: b.title, Questions: out.Questions(), NoColor: true}); err != nil {
		return b.fail(chatID, err)
	}
	return b.reply(chatID, truncate(buf.String(), maxMessageRunes))
}

func (b *Bot) handleDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) error {
	if b.maxSize > 0 && int64(doc.FileSize) > b.maxSize {
		return b.reply(chatID, fmt.Sprintf("File is too large (%d bytes, max %d).", doc.FileSize, b.maxSize))
	}
	fileURL, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		return b.fail(chatID, fmt.Errorf("get file: %w", err))
	}
	data, err := b.fetch(ctx, fileURL)
	if err != nil {
		return b.fail(chatID, fmt.Errorf("download file: %w", err))
	}

	dir, err := os.MkdirTemp("", "quizdoc-bot-*")
	if err != nil {
		return b.fail(chatID, err)
	}
	defer os.RemoveAll(dir)
	name := filepath.Base(doc.FileName)
	if name == "." || name == "" {
		name = "document.txt"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return b.fail(chatID, err)
	}

	out, err := b.pipeline.Process(ctx, path)
	if err != nil {
		return b.fail(chatID, err)
	}
	if out.Extraction.Failed {
		return b.reply(chatID, "Could not extract text from "+name+".")
	}
	if len(out.Questions()) == 0 {
		return b.reply(chatID, "No questions found in "+name+".")
	}

	var buf bytes.Buffer
	title := b.title
	if title == "" {
		title = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if err := render.Write(&buf, b.format, render.Document{Title: title, Questions: out.Questions(), NoColor: true}); err != nil {
		return b.fail(chatID, err)
	}
	reply := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  strings.TrimSuffix(name, filepath.Ext(name)) + "_sorted" + b.format.Extension(),
		Bytes: buf.Bytes(),
	})
	reply.Caption = caption(out.Questions())
	if _, err := b.api.Send(reply); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// caption summarises question counts per kind.
func caption(questions []question.Question) string {
	counts := question.CountByKind(questions)
	parts := make([]string, 0, len(counts))
	for _, kind := range question.Kinds() {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", kind.Label(), counts[kind]))
		}
	}
	return fmt.Sprintf("%d questions (%s)", len(questions), strings.Join(parts, ", "))
}

func (b *Bot) reply(chatID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// fail logs err and sends a fixed reply; error text never reaches the chat.
func (b *Bot) fail(chatID int64, err error) error {
	b.logger.Error("telegram request failed", "chat_id", chatID, "err", err)
	return b.reply(chatID, failureReply)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

// httpFetch downloads a Telegram file URL. The URL embeds the bot token, so
// errors carry only the underlying cause.
func httpFetch(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, withoutURL(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, withoutURL(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func withoutURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
