package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bakehub/internal/domain/model"
	"bakehub/internal/repository"
	uc "bakehub/internal/usecase"

	"go.uber.org/zap"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

type LoginUser struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Token        string              `json:"token"`
	Role         model.Role          `json:"role"`
	Name         string              `json:"name"`
	BakeryStatus *model.BakeryStatus `json:"bakeryStatus"`
	User         LoginUser           `json:"user"`
}

type LoginUsecase struct {
	users    repository.UserRepository
	bakeries repository.BakeryRepository
	verifier uc.PasswordVerifier
	issuer   AccessTokenIssuer
	clock    uc.Clock
	log      *zap.Logger
}

func NewLoginUsecase(
	users repository.UserRepository,
	bakeries repository.BakeryRepository,
	verifier uc.PasswordVerifier,
	issuer AccessTokenIssuer,
	clock uc.Clock,
	log *zap.Logger,
) *LoginUsecase {
	return &LoginUsecase{users: users, bakeries: bakeries, verifier: verifier, issuer: issuer, clock: clock, log: log}
}

// ログイン処理を実行する。ロールが違うアカウントでは入れない
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if strings.TrimSpace(in.Role) == "" {
		return out, uc.NewHTTPError(http.StatusBadRequest, "Role is required")
	}

	//emailでユーザー取得
	user, err := u.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return out, uc.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		u.log.Error("find user by email", zap.Error(err))
		return out, uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	want := strings.ToLower(strings.TrimSpace(in.Role))
	if string(user.Role) != want {
		return out, uc.NewHTTPError(http.StatusForbidden, fmt.Sprintf(
			"This account is registered as a %s, not %s",
			strings.ToUpper(string(user.Role)), strings.ToUpper(want),
		))
	}

	//パスワード照合
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, uc.NewHTTPError(http.StatusBadRequest, "Invalid password")
	}

	token, _, err := u.issuer.Issue(user.ID, user.Role, u.clock.Now())
	if err != nil {
		u.log.Error("issue token", zap.Error(err))
		return out, uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out = LoginOutput{
		Token: token,
		Role:  user.Role,
		Name:  user.Name,
		User:  LoginUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}

	switch user.Role {
	case model.RoleOwner:
		status := model.BakeryStatusPending
		b, err := u.bakeries.FindByOwnerID(ctx, user.ID)
		if err == nil {
			status = b.Status
		} else if !errors.Is(err, repository.ErrNotFound) {
			u.log.Error("find bakery by owner", zap.Error(err))
			return LoginOutput{}, uc.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		out.BakeryStatus = &status
	case model.RoleCustomer, model.RoleAdmin:
	}

	return out, nil
}
