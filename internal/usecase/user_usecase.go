package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bakehub/internal/domain/model"
	"bakehub/internal/infra/storage"
	repo "bakehub/internal/repository"
	"bakehub/internal/validator"

	"go.uber.org/zap"
)

type UserUsecase struct {
	users    repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	files    FileStore
	log      *zap.Logger
}

func NewUserUsecase(users repo.UserRepository, hasher PasswordHasher, verifier PasswordVerifier, files FileStore, log *zap.Logger) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher, verifier: verifier, files: files, log: log}
}

func (u *UserUsecase) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("User not found")
	}
	if err != nil {
		u.log.Error("find user", zap.Error(err))
		return nil, errInternal
	}
	return user, nil
}

// nilの項目は変更しない
type UpdateProfileInput struct {
	Name     *string
	Phone    *string
	Gender   *string
	DOB      *string // YYYY-MM-DD。空文字で消す
	Location *string
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*model.User, error) {
	user, err := u.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) != "" {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Gender != nil {
		user.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.Location != nil {
		user.Location = strings.TrimSpace(*in.Location)
	}
	if in.DOB != nil {
		s := strings.TrimSpace(*in.DOB)
		if s == "" {
			user.DOB = nil
		} else {
			d, err := parseDate(s)
			if err != nil {
				return nil, errBadRequest("dob must be YYYY-MM-DD")
			}
			user.DOB = &d
		}
	}

	if err := u.users.UpdateProfile(ctx, user); err != nil {
		u.log.Error("update profile", zap.Error(err))
		return nil, errInternal
	}
	return user, nil
}

// 日付だけでもRFC3339でも受ける
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (u *UserUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return errBadRequest("oldPassword and newPassword are required")
	}
	if err := validator.ValidatePassword(newPassword); err != nil {
		return errBadRequest(err.Error())
	}
	user, err := u.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !u.verifier.Verify(oldPassword, user.PasswordHash) {
		return errBadRequest("Old password incorrect")
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		u.log.Error("hash password", zap.Error(err))
		return errInternal
	}
	if err := u.users.UpdatePassword(ctx, userID, hashed); err != nil {
		u.log.Error("update password", zap.Error(err))
		return errInternal
	}
	return nil
}

func (u *UserUsecase) UploadAvatar(ctx context.Context, userID int64, file Upload) (*model.User, error) {
	user, err := u.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := u.files.Put(ctx, storage.NewObjectKey("avatars", file.Filename), file.Body, file.ContentType)
	if err != nil {
		u.log.Error("store avatar", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to upload avatar")
	}
	user.AvatarURL = url
	if err := u.users.UpdateProfile(ctx, user); err != nil {
		u.log.Error("update avatar", zap.Error(err))
		return nil, errInternal
	}
	return user, nil
}
