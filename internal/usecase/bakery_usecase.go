package usecase

import (
	"context"
	"errors"
	"net/http"

	"bakehub/internal/domain/model"
	"bakehub/internal/infra/storage"
	repo "bakehub/internal/repository"

	"go.uber.org/zap"
)

type BakeryUsecase struct {
	tx       repo.TransactionManager
	bakeries repo.BakeryRepository
	files    FileStore
	clock    Clock
	log      *zap.Logger
}

func NewBakeryUsecase(tx repo.TransactionManager, bakeries repo.BakeryRepository, files FileStore, clock Clock, log *zap.Logger) *BakeryUsecase {
	return &BakeryUsecase{tx: tx, bakeries: bakeries, files: files, clock: clock, log: log}
}

// 承認済みだけ
func (u *BakeryUsecase) ListApproved(ctx context.Context) ([]model.Bakery, error) {
	items, err := u.bakeries.ListByStatus(ctx, model.BakeryStatusApproved)
	if err != nil {
		u.log.Error("list approved bakeries", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

func (u *BakeryUsecase) ListAll(ctx context.Context) ([]model.Bakery, error) {
	items, err := u.bakeries.ListAll(ctx)
	if err != nil {
		u.log.Error("list bakeries", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

func (u *BakeryUsecase) Get(ctx context.Context, id int64) (model.Bakery, error) {
	b, err := u.bakeries.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Bakery{}, errNotFound("Bakery not found")
	}
	if err != nil {
		u.log.Error("find bakery", zap.Error(err))
		return model.Bakery{}, errInternal
	}
	return b, nil
}

func (u *BakeryUsecase) Mine(ctx context.Context, ownerID int64) (model.Bakery, error) {
	b, err := u.bakeries.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Bakery{}, errNotFound("No bakery found for this owner.")
	}
	if err != nil {
		u.log.Error("find bakery by owner", zap.Error(err))
		return model.Bakery{}, errInternal
	}
	return b, nil
}

func (u *BakeryUsecase) Approve(ctx context.Context, actor Actor, id int64) (model.Bakery, error) {
	return u.setStatus(ctx, actor, id, model.BakeryStatusApproved, model.AuditActionApproveBakery)
}

func (u *BakeryUsecase) Reject(ctx context.Context, actor Actor, id int64) (model.Bakery, error) {
	return u.setStatus(ctx, actor, id, model.BakeryStatusRejected, model.AuditActionRejectBakery)
}

func (u *BakeryUsecase) setStatus(ctx context.Context, actor Actor, id int64, status model.BakeryStatus, action model.AuditAction) (model.Bakery, error) {
	var out model.Bakery
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		b, err := r.Bakeries().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Bakeries().UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		if err := writeAudit(ctx, r.AuditLogs(), actor, action, model.AuditResourceBakery, id,
			map[string]interface{}{"status": b.Status},
			map[string]interface{}{"status": status},
			u.clock,
		); err != nil {
			return err
		}
		b.Status = status
		out = b
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Bakery{}, errNotFound("Bakery not found")
	}
	if err != nil {
		u.log.Error("update bakery status", zap.Error(err))
		return model.Bakery{}, errInternal
	}
	return out, nil
}

// オーナーの店の画像を差し替える
func (u *BakeryUsecase) UploadImage(ctx context.Context, ownerID int64, file Upload) (string, error) {
	b, err := u.bakeries.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", errNotFound("Bakery not found")
	}
	if err != nil {
		u.log.Error("find bakery by owner", zap.Error(err))
		return "", errInternal
	}

	url, err := u.files.Put(ctx, storage.NewObjectKey("bakeries", file.Filename), file.Body, file.ContentType)
	if err != nil {
		u.log.Error("store bakery image", zap.Error(err))
		return "", NewHTTPError(http.StatusInternalServerError, "Failed to upload bakery image")
	}
	if err := u.bakeries.UpdateImage(ctx, b.ID, url); err != nil {
		u.log.Error("update bakery image", zap.Error(err))
		return "", errInternal
	}
	return url, nil
}
