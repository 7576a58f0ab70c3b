package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another request is currently booking the same
// mentor's calendar.
var ErrLockHeld = fmt.Errorf("calendar lock already held")

// CalendarLock serializes the conflict-scan-then-insert sequence per mentor.
// SETNX with a TTL bounds the hold time so a crashed holder cannot wedge the
// calendar.
type CalendarLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCalendarLock(client *redis.Client, ttl time.Duration) *CalendarLock {
	return &CalendarLock{client: client, ttl: ttl}
}

func (l *CalendarLock) key(mentorId uuid.UUID) string {
	return fmt.Sprintf("calendar-lock:%s", mentorId)
}

// Acquire takes the mentor's calendar lock, returning a token to release with.
func (l *CalendarLock) Acquire(ctx context.Context, mentorId uuid.UUID) (string, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(mentorId), token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire calendar lock: %w", err)
	}
	if !ok {
		return "", ErrLockHeld
	}
	return token, nil
}

// releaseScript deletes the key only when the token still matches, so an
// expired-then-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *CalendarLock) Release(ctx context.Context, mentorId uuid.UUID, token string) error {
	return releaseScript.Run(ctx, l.client, []string{l.key(mentorId)}, token).Err()
}
