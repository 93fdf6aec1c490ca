package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pokebox/pokebox/internal/common"
)

// PasswordHasher computes and verifies bcrypt digests behind a semaphore that
// bounds how many hash computations run at once. bcrypt is deliberately slow;
// without the bound a burst of registrations could occupy every P and starve
// unrelated request handling.
type PasswordHasher struct {
	cost int
	sem  chan struct{}
}

// NewPasswordHasher returns a hasher with the given bcrypt cost that allows at
// most maxConcurrent simultaneous hash/verify computations.
func NewPasswordHasher(cost, maxConcurrent int) *PasswordHasher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &PasswordHasher{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

func (h *PasswordHasher) acquire(ctx context.Context) error {
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *PasswordHasher) release() {
	<-h.sem
}

// Hash returns the bcrypt digest of password. The digest embeds a random
// salt, so two hashes of the same password differ.
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Compare verifies password against hashedPassword. A mismatch yields
// common.ErrorUnauthorized; any other failure is returned as-is.
func (h *PasswordHasher) Compare(ctx context.Context, hashedPassword, password string) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrorUnauthorized
		}
		return err
	}

	return nil
}
