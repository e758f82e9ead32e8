package usecase

import (
	"context"
	"errors"
	"strings"

	"bakehub/internal/domain/model"
	"bakehub/internal/notification"
	repo "bakehub/internal/repository"

	"go.uber.org/zap"
)

type MessageUsecase struct {
	messages repo.MessageRepository
	mailer   Mailer
	clock    Clock
	log      *zap.Logger
}

func NewMessageUsecase(messages repo.MessageRepository, mailer Mailer, clock Clock, log *zap.Logger) *MessageUsecase {
	return &MessageUsecase{messages: messages, mailer: mailer, clock: clock, log: log}
}

type SendMessageInput struct {
	Name     string
	Email    string
	Category string
	Message  string
}

func (u *MessageUsecase) Send(ctx context.Context, in SendMessageInput) (model.Message, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Message) == "" {
		return model.Message{}, errBadRequest("All fields are required")
	}

	msg := model.Message{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Category: strings.TrimSpace(in.Category),
		Body:     in.Message,
		Status:   model.MessageStatusUnread,
	}
	if err := u.messages.Create(ctx, &msg); err != nil {
		u.log.Error("create message", zap.Error(err))
		return model.Message{}, errInternal
	}
	return msg, nil
}

// 新しい順
func (u *MessageUsecase) List(ctx context.Context) ([]model.Message, error) {
	items, err := u.messages.List(ctx)
	if err != nil {
		u.log.Error("list messages", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

func (u *MessageUsecase) MarkRead(ctx context.Context, id int64) (model.Message, error) {
	return u.setStatus(ctx, id, model.MessageStatusRead)
}

func (u *MessageUsecase) Resolve(ctx context.Context, id int64) (model.Message, error) {
	return u.setStatus(ctx, id, model.MessageStatusResolved)
}

func (u *MessageUsecase) setStatus(ctx context.Context, id int64, status model.MessageStatus) (model.Message, error) {
	msg, err := u.messages.UpdateStatus(ctx, id, status)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Message{}, errNotFound("Message not found")
	}
	if err != nil {
		u.log.Error("update message status", zap.Error(err))
		return model.Message{}, errInternal
	}
	return msg, nil
}

// メールが送れたときだけ返信を保存する
func (u *MessageUsecase) Reply(ctx context.Context, id int64, replyText string) (model.Message, error) {
	reply := strings.TrimSpace(replyText)
	if reply == "" {
		return model.Message{}, errBadRequest("Reply cannot be empty")
	}

	msg, err := u.messages.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Message{}, errNotFound("Message not found")
	}
	if err != nil {
		u.log.Error("find message", zap.Error(err))
		return model.Message{}, errInternal
	}

	if err := u.mailer.Send(ctx, notification.MessageReply(msg.Email, msg.Name, msg.Body, reply)); err != nil {
		u.log.Warn("message reply mail failed", zap.Int64("message_id", msg.ID), zap.Error(err))
		return model.Message{}, errBadRequest("Failed to send email")
	}

	saved, err := u.messages.SaveReply(ctx, msg.ID, reply, u.clock.Now())
	if err != nil {
		u.log.Error("save message reply", zap.Error(err))
		return model.Message{}, errInternal
	}
	return saved, nil
}
