package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymhub/config"
	"gymhub/internal/auth"
	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

var (
	ErrOTPThrottled   = errors.New("too many OTP requests for this phone")
	ErrOTPInvalid     = errors.New("invalid or expired code")
	ErrInvalidCreds   = errors.New("invalid phone or password")
	ErrNotStaff       = errors.New("account is not staff")
	ErrAccountBlocked = errors.New("account is disabled")
)

type AuthService struct {
	cfg   *config.Config
	users *repository.UserRepository
	otps  *repository.OTPRepository
}

func NewAuthService(cfg *config.Config, users *repository.UserRepository, otps *repository.OTPRepository) *AuthService {
	return &AuthService{cfg: cfg, users: users, otps: otps}
}

// RequestOTP issues a login code for the phone. SMS delivery is out of
// scope; the code is emitted through the logger for development use.
func (s *AuthService) RequestOTP(phone string) (string, error) {
	recent, err := s.otps.CountRecent(phone, time.Now().Add(-time.Minute))
	if err != nil {
		return "", err
	}
	if recent >= int64(s.cfg.OTP.RequestsPerMin) {
		return "", ErrOTPThrottled
	}
	code, err := randomDigits(6)
	if err != nil {
		return "", err
	}
	o := &models.OTP{
		Phone:     phone,
		Code:      code,
		RequestID: uuid.New().String(),
		ExpiresAt: time.Now().Add(s.cfg.OTP.TTL),
	}
	if err := s.otps.Create(o); err != nil {
		return "", err
	}
	logrus.WithField("phone", phone).Infof("[OTP] login code: %s", code)
	return o.RequestID, nil
}

// VerifyOTP consumes a valid code and returns the user with a token
// pair, creating the account on first login. role is only honored for
// brand-new users and may be customer or owner.
func (s *AuthService) VerifyOTP(phone, code, role string) (*models.User, string, string, error) {
	o, err := s.otps.GetActive(phone, time.Now())
	if err != nil {
		return nil, "", "", ErrOTPInvalid
	}
	if o.Code != code {
		return nil, "", "", ErrOTPInvalid
	}
	if err := s.otps.MarkUsed(o.ID); err != nil {
		return nil, "", "", err
	}

	u, err := s.users.GetByPhone(phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if role != domain.RoleOwner {
			role = domain.RoleCustomer
		}
		u = &models.User{
			Phone:           phone,
			Role:            role,
			IsActive:        true,
			IsPhoneVerified: true,
			ReferralCode:    newReferralCode(),
		}
		if err := s.users.Create(u); err != nil {
			return nil, "", "", err
		}
	} else if err != nil {
		return nil, "", "", err
	} else if !u.IsActive {
		return nil, "", "", ErrAccountBlocked
	} else if !u.IsPhoneVerified {
		u.IsPhoneVerified = true
		if err := s.users.Update(u); err != nil {
			return nil, "", "", err
		}
	}

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Phone, u.Role, u.IsStaff)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LoginStaff is password login for back-office accounts.
func (s *AuthService) LoginStaff(phone, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByPhone(phone)
	if err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if !u.IsStaff {
		return nil, "", "", ErrNotStaff
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Phone, u.Role, u.IsStaff)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func randomDigits(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = '0' + buf[i]%10
	}
	return string(buf), nil
}

func newReferralCode() string {
	return fmt.Sprintf("gh-%s", uuid.New().String()[:8])
}
