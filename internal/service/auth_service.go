package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ytboost/config"
	"ytboost/internal/auth"
	"ytboost/internal/domain"
	"ytboost/internal/models"
	"ytboost/internal/repository"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg       *config.Config
	users     *repository.UserRepository
	wallets   *repository.WalletRepository
	referrals *repository.ReferralRepository
}

func NewAuthService(
	cfg *config.Config,
	users *repository.UserRepository,
	wallets *repository.WalletRepository,
	referrals *repository.ReferralRepository,
) *AuthService {
	return &AuthService{cfg: cfg, users: users, wallets: wallets, referrals: referrals}
}

func (s *AuthService) Register(email, password, referralCode string) (*models.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, "", "", ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", err
	}
	s.onSignup(u, referralCode)
	return s.withTokens(u)
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCreds
	}
	return s.withTokens(u)
}

// LoginWithGoogle links or creates a user from a verified Google identity.
// referralCode is only honored for brand-new users.
func (s *AuthService) LoginWithGoogle(googleID, email, name, avatarURL, referralCode string) (*models.User, string, string, error) {
	if u, err := s.users.GetByGoogleID(googleID); err == nil {
		return s.withTokens(u)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if u, err := s.users.GetByEmail(email); err == nil {
		// existing email account: link the Google identity
		u.GoogleID = &googleID
		if u.AvatarURL == "" {
			u.AvatarURL = avatarURL
		}
		if err := s.users.Update(u); err != nil {
			return nil, "", "", err
		}
		return s.withTokens(u)
	}
	u := &models.User{Email: email, GoogleID: &googleID, DisplayName: name, AvatarURL: avatarURL}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", err
	}
	s.onSignup(u, referralCode)
	return s.withTokens(u)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.users.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	_, access, refresh, err := s.withTokens(u)
	return access, refresh, err
}

func (s *AuthService) withTokens(u *models.User) (*models.User, string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// onSignup pays the welcome gift and processes a captured referral code.
// Bonus failures are logged, never fatal: the account is already created.
func (s *AuthService) onSignup(u *models.User, referralCode string) {
	if err := s.wallets.Credit(u.ID, domain.WelcomeBonusCoins, domain.TxTypeWelcomeBonus, "welcome gift"); err != nil {
		log.Printf("[auth] welcome bonus for user %d: %v", u.ID, err)
	}
	if referralCode == "" {
		return
	}
	rc, err := s.referrals.GetByCode(referralCode)
	if err != nil || rc.UserID == u.ID {
		return
	}
	if err := s.referrals.CreateReferral(&models.Referral{ReferrerID: rc.UserID, ReferredUserID: u.ID}); err != nil {
		log.Printf("[auth] referral link for user %d: %v", u.ID, err)
		return
	}
	if err := s.wallets.Credit(rc.UserID, domain.ReferralBonusReferrer, domain.TxTypeReferralBonus,
		fmt.Sprintf("referred user %d", u.ID)); err != nil {
		log.Printf("[auth] referrer bonus for user %d: %v", rc.UserID, err)
	}
	if err := s.wallets.Credit(u.ID, domain.ReferralBonusReferred, domain.TxTypeReferralBonus,
		fmt.Sprintf("signed up with code %s", rc.Code)); err != nil {
		log.Printf("[auth] referred bonus for user %d: %v", u.ID, err)
	}
}
