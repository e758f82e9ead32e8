package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bakehub/internal/domain/model"
	"bakehub/internal/repository"
	uc "bakehub/internal/usecase"
	"bakehub/internal/validator"

	"go.uber.org/zap"
)

// 会員登録の入力
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string

	// オーナーのみ
	BakeryName string
	Address    string
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	tx     repository.TransactionManager
	users  repository.UserRepository
	otps   repository.OTPStore
	hasher uc.PasswordHasher
	clock  uc.Clock
	log    *zap.Logger
}

// DI
func NewRegisterUserUsecase(
	tx repository.TransactionManager,
	users repository.UserRepository,
	otps repository.OTPStore,
	hasher uc.PasswordHasher,
	clock uc.Clock,
	log *zap.Logger,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{tx: tx, users: users, otps: otps, hasher: hasher, clock: clock, log: log}
}

func (u *RegisterUserUsecase) RegisterCustomer(ctx context.Context, in RegisterUserInput) (*model.User, error) {
	return u.register(ctx, in, model.RoleCustomer)
}

// オーナーと審査待ちのベーカリーを同じTxで作る
func (u *RegisterUserUsecase) RegisterOwner(ctx context.Context, in RegisterUserInput) (*model.User, error) {
	return u.register(ctx, in, model.RoleOwner)
}

func (u *RegisterUserUsecase) register(ctx context.Context, in RegisterUserInput, role model.Role) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Phone == "" {
		return nil, uc.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	if err := validator.ValidateRegister(in.Email, in.Password); err != nil {
		return nil, uc.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// email重複チェック
	exists, err := u.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		u.log.Error("check email", zap.Error(err))
		return nil, uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if exists {
		return nil, uc.NewHTTPError(http.StatusBadRequest, "Email already exists")
	}

	// OTP確認済みであること
	otp, err := u.otps.Find(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		u.log.Error("find otp", zap.Error(err))
		return nil, uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err != nil || !otp.Verified || otp.Expired(u.clock.Now()) {
		return nil, uc.NewHTTPError(http.StatusBadRequest, "Please verify your email with OTP before registering.")
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		u.log.Error("hash password", zap.Error(err))
		return nil, uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		Role:         role,
	}

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		switch role {
		case model.RoleOwner:
			name := strings.TrimSpace(in.BakeryName)
			if name == "" {
				name = in.Name + "'s Bakery"
			}
			return r.Bakeries().Create(ctx, &model.Bakery{
				OwnerID: user.ID,
				Name:    name,
				Address: strings.TrimSpace(in.Address),
				Phone:   in.Phone,
				Status:  model.BakeryStatusPending,
			})
		case model.RoleCustomer, model.RoleAdmin:
			return nil
		default:
			return errors.New("unknown role")
		}
	})
	if errors.Is(err, repository.ErrConflict) {
		return nil, uc.NewHTTPError(http.StatusBadRequest, "Email already exists")
	}
	if err != nil {
		u.log.Error("register user", zap.String("role", string(role)), zap.Error(err))
		return nil, uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// 使い終わったOTPは消す
	if err := u.otps.Delete(ctx, in.Email); err != nil {
		u.log.Warn("delete otp", zap.Error(err))
	}
	return user, nil
}

// 管理者はCLIからだけ作る。OTPは不要
func (u *RegisterUserUsecase) CreateAdmin(ctx context.Context, name, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, uc.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	if err := validator.ValidateRegister(email, password); err != nil {
		return nil, uc.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Name: name, Email: email, PasswordHash: hashed, Role: model.RoleAdmin}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, uc.NewHTTPError(http.StatusBadRequest, "Email already exists")
		}
		return nil, err
	}
	return user, nil
}
