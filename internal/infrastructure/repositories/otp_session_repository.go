package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/classhub/domain"
)

const (
	otpSessionPrefix  = "otp:session:"
	otpEmailPrefix    = "otp:email:"
	otpAttemptsPrefix = "otp:attempts:"
)

// upsertOTPScript drops the session currently indexed for the email, then
// writes the new session and repoints the index. Both keys share one TTL.
var upsertOTPScript = redis.NewScript(`
local old = redis.call('GET', KEYS[1])
if old then
  redis.call('DEL', ARGV[1] .. old, ARGV[5] .. old)
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[4])
redis.call('SET', KEYS[1], ARGV[3], 'PX', ARGV[4])
return 1
`)

// consumeOTPScript deletes the session and its attempt counter, and clears
// the email index only if it still points at this handle.
var consumeOTPScript = redis.NewScript(`
local n = redis.call('DEL', KEYS[1])
redis.call('DEL', KEYS[3])
if redis.call('GET', KEYS[2]) == ARGV[1] then
  redis.call('DEL', KEYS[2])
end
return n
`)

// failOTPScript bumps the attempt counter of a live session. The counter
// expires together with the session.
var failOTPScript = redis.NewScript(`
local ttl = redis.call('PTTL', KEYS[1])
if ttl <= 0 then
  return 0
end
local n = redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ttl)
return n
`)

// OTPSessionRepositoryImpl implements domain.OTPSessionRepository using Redis.
// Key TTLs give passive expiry.
type OTPSessionRepositoryImpl struct {
	client *redis.Client
	now    func() time.Time
}

// NewOTPSessionRepository creates a new OTP session repository
func NewOTPSessionRepository(client *redis.Client) domain.OTPSessionRepository {
	return &OTPSessionRepositoryImpl{
		client: client,
		now:    time.Now,
	}
}

// Upsert implements domain.OTPSessionRepository
func (r *OTPSessionRepositoryImpl) Upsert(ctx context.Context, session *domain.OTPSession) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl < time.Millisecond {
		return fmt.Errorf("otp session for %s is already expired", session.Email)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal otp session: %w", err)
	}

	keys := []string{otpEmailPrefix + session.Email, otpSessionPrefix + session.Handle}
	err = upsertOTPScript.Run(ctx, r.client, keys,
		otpSessionPrefix, data, session.Handle, ttl.Milliseconds(), otpAttemptsPrefix).Err()
	if err != nil {
		return fmt.Errorf("failed to store otp session: %w", err)
	}
	return nil
}

// FindByHandle implements domain.OTPSessionRepository
func (r *OTPSessionRepositoryImpl) FindByHandle(ctx context.Context, handle string) (*domain.OTPSession, error) {
	data, err := r.client.Get(ctx, otpSessionPrefix+handle).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	var session domain.OTPSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp session: %w", err)
	}
	return &session, nil
}

// Consume implements domain.OTPSessionRepository
func (r *OTPSessionRepositoryImpl) Consume(ctx context.Context, session *domain.OTPSession) (bool, error) {
	keys := []string{otpSessionPrefix + session.Handle, otpEmailPrefix + session.Email, otpAttemptsPrefix + session.Handle}
	n, err := consumeOTPScript.Run(ctx, r.client, keys, session.Handle).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to delete otp session: %w", err)
	}
	return n == 1, nil
}

// RecordFailure implements domain.OTPSessionRepository
func (r *OTPSessionRepositoryImpl) RecordFailure(ctx context.Context, session *domain.OTPSession) (int64, error) {
	keys := []string{otpSessionPrefix + session.Handle, otpAttemptsPrefix + session.Handle}
	n, err := failOTPScript.Run(ctx, r.client, keys).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to record otp attempt: %w", err)
	}
	return n, nil
}
