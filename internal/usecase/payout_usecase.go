package usecase

import (
	"context"
	"errors"
	"strings"

	"bakehub/internal/domain/model"
	"bakehub/internal/metrics"
	repo "bakehub/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PayoutUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	bakeries repo.BakeryRepository
	payouts  repo.PayoutRepository
	clock    Clock
	log      *zap.Logger
}

func NewPayoutUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	bakeries repo.BakeryRepository,
	payouts repo.PayoutRepository,
	clock Clock,
	log *zap.Logger,
) *PayoutUsecase {
	return &PayoutUsecase{tx: tx, orders: orders, bakeries: bakeries, payouts: payouts, clock: clock, log: log}
}

// 完了かつ支払い済みの注文。精算済みかどうかも付ける
func (u *PayoutUsecase) ListEligibleOrders(ctx context.Context, bakeryID *int64) ([]repo.EligibleOrder, error) {
	items, err := u.orders.ListEligible(ctx, bakeryID)
	if err != nil {
		u.log.Error("list eligible orders", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

type CreatePayoutInput struct {
	BakeryID       int64
	OrderIDs       []int64
	PlatformFee    decimal.Decimal
	PaymentMethod  string
	PaymentDetails model.PaymentDetails
	Notes          string
}

// 全部通るか何も作らないか
func (u *PayoutUsecase) CreatePayout(ctx context.Context, actor Actor, in CreatePayoutInput) (model.Payout, error) {
	var out model.Payout
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		bakery, err := r.Bakeries().FindByID(ctx, in.BakeryID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("Bakery not found")
		}
		if err != nil {
			return err
		}

		if len(in.OrderIDs) == 0 {
			return errBadRequest("orderIds must not be empty")
		}
		seen := make(map[int64]struct{}, len(in.OrderIDs))
		for _, id := range in.OrderIDs {
			if _, dup := seen[id]; dup {
				return errBadRequest("orderIds must not contain duplicates")
			}
			seen[id] = struct{}{}
		}
		if in.PlatformFee.IsNegative() {
			return errBadRequest("platformFee must not be negative")
		}
		method := model.PayoutMethodBankTransfer
		if strings.TrimSpace(in.PaymentMethod) != "" {
			m, ok := model.ParsePayoutMethod(in.PaymentMethod)
			if !ok {
				return errBadRequest("Invalid payment method. Allowed: bank_transfer, upi, other")
			}
			method = m
		}

		orders, err := r.Orders().FindEligibleByIDs(ctx, bakery.ID, in.OrderIDs)
		if err != nil {
			return err
		}
		if len(orders) != len(in.OrderIDs) {
			return errBadRequest("Some orders are not completed or not paid")
		}

		claimed, err := r.Payouts().AnyClaimed(ctx, in.OrderIDs)
		if err != nil {
			return err
		}
		if claimed {
			metrics.PayoutConflicts.Inc()
			return errBadRequest("Some orders already have payouts")
		}

		total := decimal.Zero
		for _, o := range orders {
			total = total.Add(o.Total)
		}
		if in.PlatformFee.GreaterThan(total) {
			return errBadRequest("platformFee must not exceed the total amount")
		}

		p := model.Payout{
			BakeryID:       bakery.ID,
			OwnerID:        bakery.OwnerID,
			TotalAmount:    total,
			PlatformFee:    in.PlatformFee,
			PayoutAmount:   total.Sub(in.PlatformFee),
			Status:         model.PayoutStatusPending,
			PaymentMethod:  method,
			PaymentDetails: in.PaymentDetails,
			Notes:          strings.TrimSpace(in.Notes),
		}
		// 同時に作られた場合はunique制約でここが落ちる
		if err := r.Payouts().Create(ctx, &p, in.OrderIDs); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				metrics.PayoutConflicts.Inc()
				return errBadRequest("Some orders already have payouts")
			}
			return err
		}

		if err := writeAudit(ctx, r.AuditLogs(), actor, model.AuditActionCreatePayout, model.AuditResourcePayout, p.ID,
			nil,
			map[string]interface{}{"bakeryId": p.BakeryID, "orderIds": p.OrderIDs, "payoutAmount": p.PayoutAmount},
			u.clock,
		); err != nil {
			return err
		}

		p.Orders = orders
		out = p
		return nil
	})
	if err != nil {
		return model.Payout{}, u.wrapErr("create payout", err)
	}

	metrics.PayoutsCreated.Inc()
	return out, nil
}

// 未指定の項目は今の値を残す
type ProcessPayoutInput struct {
	PaymentMethod  *string
	PaymentDetails *model.PaymentDetails
	Notes          *string
}

// pending -> completed の一回だけ
func (u *PayoutUsecase) ProcessPayout(ctx context.Context, actor Actor, payoutID int64, in ProcessPayoutInput) (model.Payout, error) {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payouts().FindByID(ctx, payoutID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("Payout not found")
		}
		if err != nil {
			return err
		}
		if p.Status != model.PayoutStatusPending {
			return errBadRequest("Payout already processed")
		}

		upd := repo.PayoutProcessUpdate{
			ProcessedBy:    actor.ID,
			ProcessedAt:    u.clock.Now(),
			PaymentMethod:  p.PaymentMethod,
			PaymentDetails: p.PaymentDetails,
			Notes:          p.Notes,
		}
		if in.PaymentMethod != nil && strings.TrimSpace(*in.PaymentMethod) != "" {
			m, ok := model.ParsePayoutMethod(*in.PaymentMethod)
			if !ok {
				return errBadRequest("Invalid payment method. Allowed: bank_transfer, upi, other")
			}
			upd.PaymentMethod = m
		}
		if in.PaymentDetails != nil {
			upd.PaymentDetails = mergePaymentDetails(p.PaymentDetails, *in.PaymentDetails)
		}
		if in.Notes != nil {
			upd.Notes = strings.TrimSpace(*in.Notes)
		}

		if err := r.Payouts().MarkProcessed(ctx, p.ID, upd); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return errBadRequest("Payout already processed")
			}
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("Payout not found")
			}
			return err
		}

		return writeAudit(ctx, r.AuditLogs(), actor, model.AuditActionProcessPayout, model.AuditResourcePayout, p.ID,
			map[string]interface{}{"status": p.Status},
			map[string]interface{}{"status": model.PayoutStatusCompleted, "paymentMethod": upd.PaymentMethod},
			u.clock,
		)
	})
	if err != nil {
		return model.Payout{}, u.wrapErr("process payout", err)
	}

	p, err := u.payouts.FindByID(ctx, payoutID)
	if err != nil {
		u.log.Error("reload payout", zap.Error(err))
		return model.Payout{}, errInternal
	}
	return p, nil
}

func mergePaymentDetails(cur, in model.PaymentDetails) model.PaymentDetails {
	if in.AccountNumber != "" {
		cur.AccountNumber = in.AccountNumber
	}
	if in.IFSCCode != "" {
		cur.IFSCCode = in.IFSCCode
	}
	if in.UPIID != "" {
		cur.UPIID = in.UPIID
	}
	if in.BankName != "" {
		cur.BankName = in.BankName
	}
	return cur
}

// 店を持たないオーナーは404
func (u *PayoutUsecase) ListMyPayouts(ctx context.Context, ownerID int64) ([]model.Payout, error) {
	b, err := u.bakeries.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("Bakery not found")
	}
	if err != nil {
		u.log.Error("find bakery by owner", zap.Error(err))
		return nil, errInternal
	}
	return u.list(ctx, repo.PayoutListFilter{BakeryID: &b.ID})
}

// statusが空なら全件
func (u *PayoutUsecase) ListPayouts(ctx context.Context, status string) ([]model.Payout, error) {
	var f repo.PayoutListFilter
	if strings.TrimSpace(status) != "" {
		st, ok := model.ParsePayoutStatus(status)
		if !ok {
			return nil, errBadRequest("Invalid status. Allowed: pending, processing, completed, failed")
		}
		f.Status = &st
	}
	return u.list(ctx, f)
}

func (u *PayoutUsecase) ListPendingPayouts(ctx context.Context) ([]model.Payout, error) {
	st := model.PayoutStatusPending
	return u.list(ctx, repo.PayoutListFilter{Status: &st})
}

func (u *PayoutUsecase) list(ctx context.Context, f repo.PayoutListFilter) ([]model.Payout, error) {
	items, err := u.payouts.List(ctx, f)
	if err != nil {
		u.log.Error("list payouts", zap.Error(err))
		return nil, errInternal
	}
	return items, nil
}

func (u *PayoutUsecase) wrapErr(op string, err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	u.log.Error(op, zap.Error(err))
	return errInternal
}
