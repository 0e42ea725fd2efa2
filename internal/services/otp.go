package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/appnity/prepportal-backend/internal/config"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"github.com/redis/go-redis/v9"
)

const (
	OTPLength = 6
	OTPTTL    = 10 * time.Minute
)

var errOTPMissing = errors.New("otp not found")

// OTPStore keeps one pending code per email.
type OTPStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Take returns the stored code and removes it.
	Take(ctx context.Context, email string) (string, error)
}

// RedisOTPStore keeps codes under otp:<email> with a TTL.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, "otp:"+email, code, ttl).Err()
}

func (s *RedisOTPStore) Take(ctx context.Context, email string) (string, error) {
	code, err := s.client.GetDel(ctx, "otp:"+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", errOTPMissing
	}
	return code, err
}

type memoryOTP struct {
	code      string
	expiresAt time.Time
}

// MemoryOTPStore is used when Redis is unavailable and in tests.
type MemoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]memoryOTP
	now   func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{codes: make(map[string]memoryOTP), now: time.Now}
}

func (s *MemoryOTPStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = memoryOTP{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryOTPStore) Take(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[email]
	delete(s.codes, email)
	if !ok || s.now().After(entry.expiresAt) {
		return "", errOTPMissing
	}
	return entry.code, nil
}

// Mailer delivers a one-time code.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// SMTPMailer sends plain HTML mail through an authenticated relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     from,
	}
}

func (m *SMTPMailer) SendOTP(_ context.Context, to, code string) error {
	headers := "Subject: Your Prep Portal verification code\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n"

	body := fmt.Sprintf(`<html>
	<body style="font-family: Arial, sans-serif; padding: 20px;">
		<p>Your one-time code is:</p>
		<h1 style="letter-spacing: 4px;">%s</h1>
		<p>It expires in %d minutes. Do not share it with anyone.</p>
	</body>
</html>`, code, int(OTPTTL.Minutes()))

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(headers+body))
}

// OTPService issues and checks email codes.
type OTPService struct {
	Store  OTPStore
	Mailer Mailer
	TTL    time.Duration
}

func NewOTPService(store OTPStore, mailer Mailer) *OTPService {
	return &OTPService{Store: store, Mailer: mailer, TTL: OTPTTL}
}

func generateOTP() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

// Request generates a code, stores it and mails it. No retries.
func (s *OTPService) Request(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if !utils.ValidateEmail(email) {
		return apperrors.Validation("Invalid email address")
	}

	code, err := generateOTP()
	if err != nil {
		return apperrors.NewAppError(apperrors.KindStore, 500, "Failed to generate code")
	}
	if err := s.Store.Put(ctx, email, code, s.TTL); err != nil {
		return apperrors.Store(err)
	}
	if err := s.Mailer.SendOTP(ctx, email, code); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("OTP mail failed")
		return apperrors.Upstream("failed to send OTP", err)
	}
	logger.Info().Str("email", email).Msg("OTP sent")
	return nil
}

// Verify consumes the code for email. A code is usable once. On success the
// address stays marked as verified for the OTP lifetime so a later
// registration can claim it.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	email = utils.NormalizeEmail(email)
	stored, err := s.Store.Take(ctx, email)
	if err != nil {
		if errors.Is(err, errOTPMissing) {
			return apperrors.Validation("Invalid or expired code")
		}
		return apperrors.Store(err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(code))) != 1 {
		return apperrors.Validation("Invalid or expired code")
	}
	if err := s.Store.Put(ctx, verifiedKey(email), "1", s.TTL); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// ClaimVerified consumes the verified mark left by Verify.
func (s *OTPService) ClaimVerified(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if _, err := s.Store.Take(ctx, verifiedKey(email)); err != nil {
		if errors.Is(err, errOTPMissing) {
			return apperrors.Validation("Email has not been verified")
		}
		return apperrors.Store(err)
	}
	return nil
}

// ConfirmRegistration checks an inline code when one is given and then
// claims the verified mark. It fits EmailVerifier.
func (s *OTPService) ConfirmRegistration(ctx context.Context, email, code string) error {
	if code != "" {
		if err := s.Verify(ctx, email, code); err != nil {
			return err
		}
	}
	return s.ClaimVerified(ctx, email)
}

func verifiedKey(email string) string {
	return "verified:" + email
}
