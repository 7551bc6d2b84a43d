package service

import (
	"context"
	"log"
	"time"

	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
	"campushub/internal/repository/redis"
)

type UserService struct {
	UserRepo  *mysql.UserRepository
	ResetRepo *redis.ResetCodeRepository
	SMTP      pkg.SMTPConfig

	// send is swappable in tests; nil means pkg.SendEmail.
	send func(cfg pkg.SMTPConfig, to, subject, body string) error
}

func NewUserService(smtp pkg.SMTPConfig) *UserService {
	return &UserService{
		UserRepo:  &mysql.UserRepository{DB: mysql.DB},
		ResetRepo: &redis.ResetCodeRepository{},
		SMTP:      smtp,
	}
}

// Register creates the account. The existence checks give a friendly
// conflict message; the unique indexes catch races behind them.
func (s *UserService) Register(name, email, username, password string) (*model.User, error) {
	if name == "" || email == "" || username == "" || password == "" {
		return nil, pkg.Validation("missing required fields")
	}
	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, pkg.Conflict("user already exists")
	} else if !mysql.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.UserRepo.FindByUsername(username); err == nil {
		return nil, pkg.Conflict("user already exists")
	} else if !mysql.IsNotFound(err) {
		return nil, err
	}

	hashed, err := pkg.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:     name,
		Email:    email,
		Username: username,
		Password: hashed,
		Role:     model.RoleUser,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if mysql.IsDuplicate(err) {
			return nil, pkg.Conflict("user already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login accepts username or email. Unknown user and wrong password produce
// the same response so the endpoint does not leak which accounts exist.
func (s *UserService) Login(login, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByLogin(login)
	if err != nil {
		if mysql.IsNotFound(err) {
			return "", nil, pkg.Forbidden("invalid credentials")
		}
		return "", nil, err
	}
	if !pkg.VerifyPassword(password, user.Password) {
		return "", nil, pkg.Forbidden("invalid credentials")
	}
	token, err := pkg.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) Profile(id uint64) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Search returns not-found rather than an empty list when nothing matches.
func (s *UserService) Search(name string, skip, limit int) ([]model.User, error) {
	skip, limit = clampPage(skip, limit)
	users, err := s.UserRepo.SearchByUsername(name, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, pkg.NotFound("no users found")
	}
	return users, nil
}

func (s *UserService) UpdateProfileImage(id uint64, url *string) error {
	return s.UserRepo.UpdateProfileImage(id, url)
}

func (s *UserService) Delete(id uint64) error {
	if err := s.UserRepo.Delete(id); err != nil {
		if mysql.IsNotFound(err) {
			return pkg.NotFound("user not found")
		}
		return err
	}
	return nil
}

// ForgotPassword emails a reset code. It reports success for unknown
// addresses too; the endpoint must not confirm which emails are registered.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil
		}
		return err
	}
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.ResetRepo.SavePending(ctx, user.Email, code); err != nil {
		return pkg.Upstream("reset service unavailable")
	}
	sender := s.send
	if sender == nil {
		sender = pkg.SendEmail
	}
	if err := sender(s.SMTP, user.Email, "Password reset code", pkg.ResetCodeHTML(code, 10*time.Minute)); err != nil {
		if derr := s.ResetRepo.DeletePending(ctx, user.Email); derr != nil {
			log.Printf("cleanup pending reset code for %s: %v", user.Email, derr)
		}
		return pkg.Upstream("could not send reset email")
	}
	return nil
}

func (s *UserService) VerifyResetCode(ctx context.Context, email, code string) error {
	ok, err := s.ResetRepo.Confirm(ctx, email, code)
	if err != nil {
		return pkg.Upstream("reset service unavailable")
	}
	if !ok {
		return pkg.Validation("invalid or expired code")
	}
	return nil
}

// ResetPassword finishes the flow started by ForgotPassword. The code is
// single-use: it is deleted before the password is written.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return pkg.Validation("missing new password")
	}
	stored, err := s.ResetRepo.GetConfirmed(ctx, email)
	if err != nil {
		return pkg.Upstream("reset service unavailable")
	}
	if stored == "" || stored != code {
		return pkg.Validation("invalid or expired code")
	}
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if mysql.IsNotFound(err) {
			return pkg.Validation("invalid or expired code")
		}
		return err
	}
	if err := s.ResetRepo.Delete(ctx, email); err != nil {
		return pkg.Upstream("reset service unavailable")
	}
	hashed, err := pkg.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(user.ID, hashed)
}

func (s *UserService) ChangePassword(id uint64, current, next string) error {
	if next == "" {
		return pkg.Validation("missing new password")
	}
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return pkg.NotFound("user not found")
		}
		return err
	}
	if !pkg.VerifyPassword(current, user.Password) {
		return pkg.Forbidden("invalid credentials")
	}
	hashed, err := pkg.HashPassword(next)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(user.ID, hashed)
}
