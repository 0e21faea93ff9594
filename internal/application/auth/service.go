package auth

import (
	"strings"
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	tokens ActionTokens
	mail   MailSender

	sessionTTL time.Duration

	// URLs used to build links sent to the user
	verifyEmailBaseURL   string // e.g. https://frontend/verify-email/
	passwordResetBaseURL string // e.g. https://frontend/reset-password/
	verifyTokenTTL       time.Duration
	resetTokenTTL        time.Duration
}

type Config struct {
	SessionTTL           time.Duration
	VerifyEmailBaseURL   string
	PasswordResetBaseURL string
	VerifyTokenTTL       time.Duration
	ResetTokenTTL        time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	tokens ActionTokens,
	mail MailSender,
	cfg Config,
) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	verifyTTL := cfg.VerifyTokenTTL
	if verifyTTL <= 0 {
		verifyTTL = 15 * time.Minute
	}
	resetTTL := cfg.ResetTokenTTL
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		tokens: tokens,
		mail:   mail,

		sessionTTL: sessionTTL,

		verifyEmailBaseURL:   strings.TrimSuffix(cfg.VerifyEmailBaseURL, "/"),
		passwordResetBaseURL: strings.TrimSuffix(cfg.PasswordResetBaseURL, "/"),
		verifyTokenTTL:       verifyTTL,
		resetTokenTTL:        resetTTL,
	}
}

type RegisterResult struct {
	User domain.User
}

type LoginResult struct {
	User  domain.User
	Token string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	host := email[at+1:]
	return strings.Contains(host, ".") && !strings.ContainsAny(email, " \t")
}

func (s *Service) verifyURL(token string) string {
	return s.verifyEmailBaseURL + "/" + token
}

func (s *Service) resetURL(token string) string {
	return s.passwordResetBaseURL + "/" + token
}
