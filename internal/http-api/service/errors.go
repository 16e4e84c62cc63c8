package service

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrSamePassword     = errors.New("new password must be different from current password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrComicNotFound    = errors.New("comic not found")
	ErrPageNotFound     = errors.New("page not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrNotCreator       = errors.New("not the comic's creator")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
	ErrBadImageData     = errors.New("invalid base64 image data")
)

// LockedOutError rejects a login attempt during an active lockout window.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many attempts, try again in %d seconds", e.RetryAfterSeconds())
}

// RetryAfterSeconds rounds the remaining window up to whole seconds, so the
// client never retries a moment too early.
func (e *LockedOutError) RetryAfterSeconds() int {
	return int(math.Ceil(e.RetryAfter.Seconds()))
}
