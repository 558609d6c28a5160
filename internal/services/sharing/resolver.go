package sharing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/repository"
)

// Denial taxonomy. All of these collapse to the same anonymous outcome at the
// transport layer; the distinction exists for internal logging only.
var (
	// ErrNotFound is returned for unknown or malformed sharing keys
	ErrNotFound = errors.New("sharing key not found")

	// ErrExpired is returned when the share's expiry has passed
	ErrExpired = errors.New("sharing key expired")

	// ErrPasswordRequired is returned when verification is needed but no password was supplied
	ErrPasswordRequired = errors.New("share password required")

	// ErrPasswordIncorrect is returned when the supplied password fails verification
	ErrPasswordIncorrect = errors.New("share password incorrect")

	// ErrDisabled is returned when the sharing feature is switched off
	ErrDisabled = errors.New("sharing is disabled")
)

// IsDenial reports whether err is a normal access-control denial rather than
// an infrastructure failure. Denials must never surface as transport errors.
func IsDenial(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordIncorrect) ||
		errors.Is(err, ErrDisabled)
}

// Resolution is the outcome of a successful resolve: the owning user and the
// share that granted access. The user value stays server-side; only its
// projection is ever exposed.
type Resolution struct {
	User           *models.User
	Share          *models.Share
	UsedSharingKey bool
}

// Resolver turns a sharing key (and optionally a password) into either a
// Resolution or a denial. Policy is injected at construction so resolution is
// deterministic and test-friendly; there is no ambient global state.
//
// Resolver is safe for concurrent use: each call is self-contained and the
// optional share cache is internally synchronized.
type Resolver struct {
	shares  repository.ShareRepository
	users   repository.UserRepository
	policy  config.SharingConfig
	timeout time.Duration
	cache   *expirable.LRU[string, *models.Share]
	now     func() time.Time
}

// NewResolver creates a resolver over the given stores with the given policy.
// timeout bounds each storage read; reads that exceed it fail instead of
// hanging the request.
func NewResolver(shares repository.ShareRepository, users repository.UserRepository, policy config.SharingConfig, timeout time.Duration) *Resolver {
	r := &Resolver{
		shares:  shares,
		users:   users,
		policy:  policy,
		timeout: timeout,
		now:     time.Now,
	}
	if policy.CacheSize > 0 {
		r.cache = expirable.NewLRU[string, *models.Share](policy.CacheSize, nil, policy.CacheTTL)
	}
	return r
}

// WithClock overrides the resolver's time source. Used by tests to exercise
// expiry without sleeping.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve loads and validates the share behind sharingKey and, when password
// verification applies, checks suppliedPassword before exposing anything.
//
// Password verification is forced when either the share carries its own
// password or the deployment policy demands one; the two switches are
// independent and each alone is sufficient.
func (r *Resolver) Resolve(ctx context.Context, sharingKey, suppliedPassword string) (*Resolution, error) {
	return r.resolve(ctx, sharingKey, suppliedPassword, false)
}

// ResolvePreverified resolves a sharing key whose password step was already
// satisfied earlier in the session. Share existence, expiry and the
// feature switch are still enforced.
func (r *Resolver) ResolvePreverified(ctx context.Context, sharingKey string) (*Resolution, error) {
	return r.resolve(ctx, sharingKey, "", true)
}

func (r *Resolver) resolve(ctx context.Context, sharingKey, suppliedPassword string, preverified bool) (*Resolution, error) {
	if !r.policy.Enabled {
		return nil, ErrDisabled
	}
	if sharingKey == "" {
		return nil, ErrNotFound
	}

	share, err := r.lookupShare(ctx, sharingKey)
	if err != nil {
		return nil, err
	}

	if share.Expired(r.now()) {
		return nil, ErrExpired
	}

	if !preverified && r.passwordNeeded(share) {
		if suppliedPassword == "" {
			return nil, ErrPasswordRequired
		}
		if !VerifySharePassword(share, suppliedPassword) {
			return nil, ErrPasswordIncorrect
		}
	}

	// Second, independent read: no transaction spans the share and its owner.
	// An owner deleted in between degrades to a plain denial.
	user, err := r.lookupOwner(ctx, share.OwnerID)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		User:           user,
		Share:          share,
		UsedSharingKey: true,
	}, nil
}

// passwordNeeded reports whether this resolution must verify a password
func (r *Resolver) passwordNeeded(share *models.Share) bool {
	return share.HasPassword() || r.policy.PasswordRequired
}

func (r *Resolver) lookupShare(ctx context.Context, sharingKey string) (*models.Share, error) {
	if r.cache != nil {
		if share, ok := r.cache.Get(sharingKey); ok {
			return share, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	share, err := r.shares.GetBySharingKey(ctx, sharingKey)
	if err != nil {
		if errors.Is(err, repository.ErrShareNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load share: %w", err)
	}

	if r.cache != nil {
		r.cache.Add(sharingKey, share)
	}
	return share, nil
}

func (r *Resolver) lookupOwner(ctx context.Context, ownerID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := r.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load share owner: %w", err)
	}
	if user.DisabledAt != nil {
		return nil, ErrNotFound
	}
	return user, nil
}
