package repository

import (
	"context"
	"time"

	"bakehub/internal/domain/model"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByID(ctx context.Context, id int64) (model.Message, error)
	//新しい順
	List(ctx context.Context) ([]model.Message, error)
	UpdateStatus(ctx context.Context, id int64, status model.MessageStatus) (model.Message, error)
	SaveReply(ctx context.Context, id int64, reply string, at time.Time) (model.Message, error)
}
