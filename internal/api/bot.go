package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	app "tamperscope/internal/application"
	"tamperscope/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для криминалистического анализа изображений.

🔍 Пришлите изображение, и я соберу отчёт из шести панелей: оригинал, ELA, фильтр Габора, границы, частотный спектр и карта текстуры.

📋 Команды:
/analyze — проверить изображение
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте команду /analyze
2️⃣ Пришлите изображение (фото или файл)
3️⃣ Получите отчёт analysis_report.png с шестью панелями

💡 Яркие зоны ELA, несогласованные текстуры и двойные границы — повод присмотреться к снимку.

📋 Команды:
/analyze — начать проверку
/cancel — отменить операцию`

	msgAwaitingImage   = "🖼 Пришлите изображение для анализа."
	msgCancelled       = "❌ Операция отменена. Отправьте /analyze для новой проверки."
	msgUseAnalyze      = "🖼 Сначала отправьте /analyze, затем изображение."
	msgSendImage       = "🖼 Пожалуйста, отправьте изображение или команду /analyze."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Строю отчёт, это занимает несколько секунд..."
	msgProcessingError = "⚠️ Не удалось построить отчёт. Попробуйте другое изображение."
)

// Bot представляет Telegram-бота
type Bot struct {
	api     *tgbotapi.BotAPI
	users   *app.UserService
	reports *app.ReportService
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, reports *app.ReportService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("account", api.Self.UserName).Msg("Authorized on Telegram")

	return &Bot{
		api:     api,
		users:   users,
		reports: reports,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Get user failed")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка изображений
	if len(msg.Photo) > 0 || msg.Document != nil {
		if user.State != entity.StateAwaitingImage {
			b.sendMessage(msg.Chat.ID, msgUseAnalyze)
			return
		}
		b.handleImage(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendImage)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.setState(ctx, msg, entity.StateMainMenu)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "analyze":
		b.setState(ctx, msg, entity.StateAwaitingImage)
		b.sendMessage(msg.Chat.ID, msgAwaitingImage)

	case "cancel":
		b.setState(ctx, msg, entity.StateMainMenu)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage скачивает изображение, строит отчёт и отправляет его документом
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message) {
	b.setState(ctx, msg, entity.StateAnalyzing)
	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadImage(msg)
	if err != nil {
		log.Error().Err(err).Msg("Download image failed")
		b.finish(ctx, msg, msgProcessingError)
		return
	}

	report, err := b.reports.GenerateFromBytes(ctx, imageData)
	if err != nil {
		log.Error().Err(err).Msg("Report generation failed")
		b.finish(ctx, msg, msgProcessingError)
		return
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  "analysis_report.png",
		Bytes: report,
	})
	if _, err := b.api.Send(doc); err != nil {
		log.Error().Err(err).Msg("Send report failed")
		b.finish(ctx, msg, msgProcessingError)
		return
	}

	b.finish(ctx, msg, "")
}

// finish возвращает пользователя в главное меню
func (b *Bot) finish(ctx context.Context, msg *tgbotapi.Message, text string) {
	b.setState(ctx, msg, entity.StateMainMenu)
	if text != "" {
		b.sendMessage(msg.Chat.ID, text)
	}
}

func (b *Bot) setState(ctx context.Context, msg *tgbotapi.Message, state entity.UserState) {
	if _, err := b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, state); err != nil {
		log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Set user state failed")
	}
}

// downloadImage выбирает файл наибольшего разрешения и скачивает его
func (b *Bot) downloadImage(msg *tgbotapi.Message) ([]byte, error) {
	var fileID string
	switch {
	case len(msg.Photo) > 0:
		fileID = msg.Photo[len(msg.Photo)-1].FileID
	case msg.Document != nil:
		fileID = msg.Document.FileID
	}
	if fileID == "" {
		return nil, errors.New("message has no image")
	}
	return b.downloadFile(fileID)
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Msg("Send message failed")
	}
}
