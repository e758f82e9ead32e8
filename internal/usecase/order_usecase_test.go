package usecase_test

import (
	"net/http"
	"testing"

	"bakehub/internal/domain/model"
	"bakehub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeInput(bakeryID int64, total string, method string) usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		Items: []usecase.PlaceOrderItem{
			{BakeryID: bakeryID, Name: "Croissant", Price: dec("250"), Qty: 2},
		},
		Total:         dec(total),
		Address:       "12 Baker St",
		Phone:         "9876543210",
		PaymentMethod: method,
	}
}

func TestOrderUsecase_PlaceOrder_CODStartsUnpaid(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, model.RoleCustomer, "c@example.com")
	owner := f.user(t, model.RoleOwner, "o@example.com")
	b := f.bakery(t, owner)

	o, err := f.orderUC().PlaceOrder(f.ctx, customer.ID, placeInput(b.ID, "500", "cod"))
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusConfirmed, o.Status)
	assert.Equal(t, model.PaymentStatusPending, o.PaymentStatus)
	assert.True(t, o.PaidAmount.IsZero())

	saved, err := f.orders.FindByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, saved.PaymentStatus)
	assert.True(t, saved.Total.Equal(dec("500")))
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "Croissant", saved.Items[0].Name)
	assert.Equal(t, int64(2), saved.Items[0].Qty)

	// 顧客とオーナーに1通ずつ
	sent := f.notifier.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "c@example.com", sent[0].To)
	assert.Equal(t, "o@example.com", sent[1].To)
}

func TestOrderUsecase_PlaceOrder_OnlineIsPaid(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, model.RoleCustomer, "c@example.com")
	owner := f.user(t, model.RoleOwner, "o@example.com")
	b := f.bakery(t, owner)

	in := placeInput(b.ID, "500", "online")
	paid := dec("500")
	in.PaidAmount = &paid

	o, err := f.orderUC().PlaceOrder(f.ctx, customer.ID, in)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, o.PaymentStatus)
	assert.True(t, o.PaidAmount.Equal(dec("500")))
}

func TestOrderUsecase_PlaceOrder_Validation(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, model.RoleCustomer, "c@example.com")
	owner := f.user(t, model.RoleOwner, "o@example.com")
	b := f.bakery(t, owner)
	other := f.bakery(t, f.user(t, model.RoleOwner, "o2@example.com"))

	cases := []struct {
		name   string
		mutate func(in *usecase.PlaceOrderInput)
		status int
		msg    string
	}{
		{"no items", func(in *usecase.PlaceOrderInput) { in.Items = nil }, http.StatusBadRequest, "Order must contain items"},
		{"no address", func(in *usecase.PlaceOrderInput) { in.Address = "  " }, http.StatusBadRequest, "Address is required"},
		{"no phone", func(in *usecase.PlaceOrderInput) { in.Phone = "" }, http.StatusBadRequest, "Phone is required"},
		{"mixed bakeries", func(in *usecase.PlaceOrderInput) {
			in.Items = append(in.Items, usecase.PlaceOrderItem{BakeryID: other.ID, Name: "Bun", Price: dec("10"), Qty: 1})
		}, http.StatusBadRequest, "All items must belong to the same bakery"},
		{"zero qty", func(in *usecase.PlaceOrderInput) { in.Items[0].Qty = 0 }, http.StatusBadRequest, "Item quantity must be at least 1"},
		{"negative total", func(in *usecase.PlaceOrderInput) { in.Total = dec("-1") }, http.StatusBadRequest, "Total must not be negative"},
		{"bad method", func(in *usecase.PlaceOrderInput) { in.PaymentMethod = "card" }, http.StatusBadRequest, ""},
		{"unknown bakery", func(in *usecase.PlaceOrderInput) { in.Items[0].BakeryID = 9999 }, http.StatusNotFound, "Bakery not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := placeInput(b.ID, "500", "cod")
			tc.mutate(&in)
			_, err := f.orderUC().PlaceOrder(f.ctx, customer.ID, in)
			requireHTTPError(t, err, tc.status, tc.msg)
		})
	}

	// どのケースでも注文は作られない
	assert.Equal(t, int64(0), f.count(t, &model.Order{}))
	assert.Equal(t, int64(0), f.count(t, &model.OrderItem{}))
	assert.Empty(t, f.notifier.sent())
}

func TestOrderUsecase_GetOrder_RoleMatrix(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, model.RoleCustomer, "c@example.com")
	stranger := f.user(t, model.RoleCustomer, "s@example.com")
	owner := f.user(t, model.RoleOwner, "o@example.com")
	otherOwner := f.user(t, model.RoleOwner, "o2@example.com")
	noBakeryOwner := f.user(t, model.RoleOwner, "o3@example.com")
	admin := f.user(t, model.RoleAdmin, "a@example.com")
	b := f.bakery(t, owner)
	f.bakery(t, otherOwner)

	o, err := f.orderUC().PlaceOrder(f.ctx, customer.ID, placeInput(b.ID, "500", "cod"))
	require.NoError(t, err)

	cases := []struct {
		name  string
		actor usecase.Actor
		ok    bool
	}{
		{"own customer", usecase.Actor{ID: customer.ID, Role: model.RoleCustomer}, true},
		{"other customer", usecase.Actor{ID: stranger.ID, Role: model.RoleCustomer}, false},
		{"bakery owner", usecase.Actor{ID: owner.ID, Role: model.RoleOwner}, true},
		{"other owner", usecase.Actor{ID: otherOwner.ID, Role: model.RoleOwner}, false},
		{"owner without bakery", usecase.Actor{ID: noBakeryOwner.ID, Role: model.RoleOwner}, false},
		{"admin", usecase.Actor{ID: admin.ID, Role: model.RoleAdmin}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.orderUC().GetOrder(f.ctx, tc.actor, o.ID)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, o.ID, got.ID)
				return
			}
			requireHTTPError(t, err, http.StatusForbidden, "Unauthorized")
		})
	}

	_, err = f.orderUC().GetOrder(f.ctx, usecase.Actor{ID: admin.ID, Role: model.RoleAdmin}, 4242)
	requireHTTPError(t, err, http.StatusNotFound, "Order not found")
}

func TestOrderUsecase_UpdatePayment_Idempotent(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, model.RoleCustomer, "c@example.com")
	owner := f.user(t, model.RoleOwner, "o@example.com")
	b := f.bakery(t, owner)
	actor := usecase.Actor{ID: owner.ID, Role: model.RoleOwner}

	o, err := f.orderUC().PlaceOrder(f.ctx, customer.ID, placeInput(b.ID, "500", "cod"))
	require.NoError(t, err)

	first, err := f.orderUC().UpdatePayment(f.ctx, actor, o.ID, "paid", nil)
	require.NoError(t, err)
	second, err := f.orderUC().UpdatePayment(f.ctx, actor, o.ID, "PAID", nil)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPaid, first.PaymentStatus)
	assert.Equal(t, first.PaymentStatus, second.PaymentStatus)
	assert.True(t, first.PaidAmount.Equal(dec("500")))
	assert.True(t, second.PaidAmount.Equal(first.PaidAmount))

	saved, err := f.orders.FindByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, saved.PaidAmount.Equal(dec("500")))

	// pendingに戻すと0
	back, err := f.orderUC().UpdatePayment(f.ctx, actor, o.ID, "pending", nil)
	require.NoError(t, err)
	assert.True(t, back.PaidAmount.IsZero())

	assert.Equal(t, int64(3), f.count(t, &model.AuditLog{}))
}

func TestOrderUsecase_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, model.RoleCustomer, "c@example.com")
	owner := f.user(t, model.RoleOwner, "o@example.com")
	otherOwner := f.user(t, model.RoleOwner, "o2@example.com")
	b := f.bakery(t, owner)
	f.bakery(t, otherOwner)

	o, err := f.orderUC().PlaceOrder(f.ctx, customer.ID, placeInput(b.ID, "500", "cod"))
	require.NoError(t, err)

	t.Run("owner of bakery", func(t *testing.T) {
		got, err := f.orderUC().UpdateStatus(f.ctx, usecase.Actor{ID: owner.ID, Role: model.RoleOwner}, o.ID, "Completed")
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCompleted, got.Status)
	})
	t.Run("other owner", func(t *testing.T) {
		_, err := f.orderUC().UpdateStatus(f.ctx, usecase.Actor{ID: otherOwner.ID, Role: model.RoleOwner}, o.ID, "ready")
		requireHTTPError(t, err, http.StatusForbidden, "Unauthorized")
	})
	t.Run("invalid status", func(t *testing.T) {
		_, err := f.orderUC().UpdateStatus(f.ctx, usecase.Actor{ID: owner.ID, Role: model.RoleOwner}, o.ID, "shipped")
		requireHTTPError(t, err, http.StatusBadRequest, "")
	})
	t.Run("missing order", func(t *testing.T) {
		_, err := f.orderUC().UpdateStatus(f.ctx, usecase.Actor{ID: owner.ID, Role: model.RoleOwner}, 777, "ready")
		requireHTTPError(t, err, http.StatusNotFound, "Order not found")
	})

	saved, err := f.orders.FindByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, saved.Status)
}

func TestOrderUsecase_ListOwnerOrders_NoBakery(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, model.RoleOwner, "o@example.com")

	_, err := f.orderUC().ListOwnerOrders(f.ctx, owner.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Bakery not found")
}
