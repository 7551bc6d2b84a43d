package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pendingPrefix   = "pwreset:pending:"
	confirmedPrefix = "pwreset:confirmed:"

	// Codes expire in both phases; abandoned resets clean themselves up.
	resetTTL = 10 * time.Minute
)

var ErrRedisUnavailable = errors.New("redis unavailable")

// promoteScript moves a pending code to the confirmed namespace only if
// the submitted code matches, atomically. KEYS[1]=pending, KEYS[2]=confirmed,
// ARGV[1]=code, ARGV[2]=ttl ms.
var promoteScript = redis.NewScript(`
local code = redis.call("GET", KEYS[1])
if not code or code ~= ARGV[1] then
	return 0
end
redis.call("DEL", KEYS[1])
redis.call("SET", KEYS[2], code, "PX", ARGV[2])
return 1
`)

// ResetCodeRepository stores password-reset codes in a two-phase scheme:
// a code is pending until the user echoes it back, then confirmed until
// the new password arrives.
type ResetCodeRepository struct{}

func (r *ResetCodeRepository) SavePending(ctx context.Context, email, code string) error {
	if Client == nil {
		return ErrRedisUnavailable
	}
	return Client.Set(ctx, pendingPrefix+email, code, resetTTL).Err()
}

// Confirm promotes a matching pending code and reports whether it matched.
func (r *ResetCodeRepository) Confirm(ctx context.Context, email, code string) (bool, error) {
	if Client == nil {
		return false, ErrRedisUnavailable
	}
	keys := []string{pendingPrefix + email, confirmedPrefix + email}
	n, err := promoteScript.Run(ctx, Client, keys, code, resetTTL.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("promote reset code: %w", err)
	}
	return n == 1, nil
}

func (r *ResetCodeRepository) GetConfirmed(ctx context.Context, email string) (string, error) {
	if Client == nil {
		return "", ErrRedisUnavailable
	}
	code, err := Client.Get(ctx, confirmedPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return code, err
}

func (r *ResetCodeRepository) DeletePending(ctx context.Context, email string) error {
	if Client == nil {
		return ErrRedisUnavailable
	}
	return Client.Del(ctx, pendingPrefix+email).Err()
}

// Delete clears both phases; called after a successful reset so the code
// is single-use.
func (r *ResetCodeRepository) Delete(ctx context.Context, email string) error {
	if Client == nil {
		return ErrRedisUnavailable
	}
	return Client.Del(ctx, pendingPrefix+email, confirmedPrefix+email).Err()
}
