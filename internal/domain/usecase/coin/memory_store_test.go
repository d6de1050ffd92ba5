package coin

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/persistence"
)

// memoryStore is an in-memory unit of work. Transactions are serialised by a mutex and work
// on a copy of the committed state, so a rollback simply drops the copy.
type memoryStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*entity.User
	ledger []*entity.CoinLedgerEntry
	clock  *fixedClock

	// failures injected by operation name
	failOn map[string]error
	begins int

	// staleDecrements makes that many guarded decrements report a refusal regardless of
	// the balance, as when a credit commits right after the statement ran
	staleDecrements int
}

type memoryTx struct {
	users  map[uuid.UUID]*entity.User
	ledger []*entity.CoinLedgerEntry
	done   bool
}

type memoryTxKey struct{}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time                  { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fixedClock) WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[uuid.UUID]*entity.User),
		clock:  &fixedClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		failOn: make(map[string]error),
	}
}

// addUser stores a user with the given balance and optional server roles
func (s *memoryStore) addUser(coins int64, serverRoles ...string) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = entity.RestoreUser(id, entity.RoleJobSeeker, serverRoles, coins, s.clock.now, s.clock.now)
	return id
}

func (s *memoryStore) coins(id uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].Coins()
}

func (s *memoryStore) total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int64
	for _, u := range s.users {
		sum += u.Coins()
	}
	return sum
}

func (s *memoryStore) entries() []*entity.CoinLedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.CoinLedgerEntry(nil), s.ledger...)
}

func (s *memoryStore) injected(op string) error {
	return s.failOn[op]
}

// withCoins returns a copy of u holding coins, stamped with the store clock
func (s *memoryStore) withCoins(u *entity.User, coins int64) *entity.User {
	return entity.RestoreUser(u.ID, u.Role, u.ServerRoles, coins, u.CreatedAt, s.clock.now)
}

func cloneUsers(src map[uuid.UUID]*entity.User) map[uuid.UUID]*entity.User {
	dst := make(map[uuid.UUID]*entity.User, len(src))
	for id, u := range src {
		dst[id] = entity.RestoreUser(u.ID, u.Role, u.ServerRoles, u.Coins(), u.CreatedAt, u.UpdatedAt)
	}
	return dst
}

func (s *memoryStore) Begin(ctx context.Context) (context.Context, error) {
	if err := s.injected("Begin"); err != nil {
		return ctx, err
	}
	s.mu.Lock()
	s.begins++
	tx := &memoryTx{users: cloneUsers(s.users)}
	return context.WithValue(ctx, memoryTxKey{}, tx), nil
}

func (s *memoryStore) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx)
	if !ok || tx.done {
		return errors.New("no transaction found in context")
	}
	tx.done = true
	defer s.mu.Unlock()

	if err := s.injected("Commit"); err != nil {
		return err
	}
	s.users = tx.users
	s.ledger = append(s.ledger, tx.ledger...)
	return nil
}

func (s *memoryStore) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx)
	if !ok {
		return errors.New("no transaction found in context")
	}
	if tx.done {
		return nil
	}
	tx.done = true
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) GetUserRepository(ctx context.Context) persistence.UserRepository {
	tx, _ := ctx.Value(memoryTxKey{}).(*memoryTx)
	return &memoryUsers{store: s, tx: tx}
}

func (s *memoryStore) GetLedgerRepository(ctx context.Context) persistence.CoinLedgerRepository {
	tx, _ := ctx.Value(memoryTxKey{}).(*memoryTx)
	return &memoryLedger{store: s, tx: tx}
}

type memoryUsers struct {
	store *memoryStore
	tx    *memoryTx
}

// view runs fn on the transaction copy, or on the committed state under the store lock
func (r *memoryUsers) view(fn func(users map[uuid.UUID]*entity.User) error) error {
	if r.tx != nil {
		return fn(r.tx.users)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.users)
}

func (r *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if err := r.store.injected("GetByID"); err != nil {
		return nil, err
	}
	var found *entity.User
	err := r.view(func(users map[uuid.UUID]*entity.User) error {
		u, ok := users[id]
		if !ok {
			return errs.ErrUserNotFound
		}
		found = entity.RestoreUser(u.ID, u.Role, u.ServerRoles, u.Coins(), u.CreatedAt, u.UpdatedAt)
		return nil
	})
	return found, err
}

func (r *memoryUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.view(func(users map[uuid.UUID]*entity.User) error {
		_, exists = users[id]
		return nil
	})
	return exists, err
}

func (r *memoryUsers) Create(_ context.Context, user *entity.User) error {
	return r.view(func(users map[uuid.UUID]*entity.User) error {
		if _, ok := users[user.ID]; ok {
			return errs.ErrDuplicateUser
		}
		users[user.ID] = user
		return nil
	})
}

func (r *memoryUsers) LockForUpdate(_ context.Context, ids ...uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	if err := r.store.injected("LockForUpdate"); err != nil {
		return nil, err
	}
	ordered := append([]uuid.UUID(nil), ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })

	locked := make(map[uuid.UUID]*entity.User, len(ids))
	err := r.view(func(users map[uuid.UUID]*entity.User) error {
		for _, id := range ordered {
			if u, ok := users[id]; ok {
				locked[id] = entity.RestoreUser(u.ID, u.Role, u.ServerRoles, u.Coins(), u.CreatedAt, u.UpdatedAt)
			}
		}
		return nil
	})
	return locked, err
}

func (r *memoryUsers) IncrementCoins(_ context.Context, id uuid.UUID, amount int64) (int64, error) {
	if err := r.store.injected("IncrementCoins"); err != nil {
		return 0, err
	}
	var current int64
	err := r.view(func(users map[uuid.UUID]*entity.User) error {
		u, ok := users[id]
		if !ok {
			return errs.ErrUserNotFound
		}
		if u.Coins() > math.MaxInt64-amount {
			return errs.ErrBalanceOutOfRange
		}
		current = u.Coins() + amount
		users[id] = r.store.withCoins(u, current)
		return nil
	})
	return current, err
}

func (r *memoryUsers) DecrementCoinsIfSufficient(_ context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	if err := r.store.injected("DecrementCoinsIfSufficient"); err != nil {
		return 0, false, err
	}
	var (
		current int64
		applied bool
	)
	err := r.view(func(users map[uuid.UUID]*entity.User) error {
		u, ok := users[id]
		if !ok {
			return nil
		}
		if r.store.staleDecrements > 0 {
			r.store.staleDecrements--
			return nil
		}
		if u.Coins() >= amount {
			applied = true
			current = u.Coins() - amount
			users[id] = r.store.withCoins(u, current)
		}
		return nil
	})
	return current, applied, err
}

func (r *memoryUsers) SetCoins(_ context.Context, id uuid.UUID, amount int64) error {
	if err := r.store.injected("SetCoins"); err != nil {
		return err
	}
	return r.view(func(users map[uuid.UUID]*entity.User) error {
		u, ok := users[id]
		if !ok {
			return errs.ErrUserNotFound
		}
		if amount < 0 {
			return errs.ErrConstraintViolation
		}
		users[id] = r.store.withCoins(u, amount)
		return nil
	})
}

type memoryLedger struct {
	store *memoryStore
	tx    *memoryTx
}

func (r *memoryLedger) Append(_ context.Context, entries ...*entity.CoinLedgerEntry) error {
	if err := r.store.injected("Append"); err != nil {
		return err
	}
	if r.tx == nil {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
		r.store.ledger = append(r.store.ledger, entries...)
		return nil
	}
	r.tx.ledger = append(r.tx.ledger, entries...)
	return nil
}

func (r *memoryLedger) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.CoinLedgerEntry, int64, error) {
	if err := r.store.injected("ListByUser"); err != nil {
		return nil, 0, err
	}
	var all []*entity.CoinLedgerEntry
	if r.tx == nil {
		r.store.mu.Lock()
		all = append(all, r.store.ledger...)
		r.store.mu.Unlock()
	} else {
		all = append(append(all, r.store.ledger...), r.tx.ledger...)
	}

	var mine []*entity.CoinLedgerEntry
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].UserID == userID {
			mine = append(mine, all[i])
		}
	}

	total := int64(len(mine))
	if offset >= len(mine) {
		return []*entity.CoinLedgerEntry{}, total, nil
	}
	end := min(offset+limit, len(mine))
	return mine[offset:end], total, nil
}
