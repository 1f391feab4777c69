package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// fakeAccountRepo is an in-memory AccountRepository. It enforces the same
// login uniqueness contract as the real store and can be primed to fail.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
	failWith error
}

func newFakeAccountRepo(accounts ...*entity.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
	for _, account := range accounts {
		if account.ID == uuid.Nil {
			account.ID = uuid.New()
		}
		repo.accounts[account.ID] = cloneAccount(account)
	}

	return repo
}

func cloneAccount(account *entity.Account) *entity.Account {
	clone := *account

	return &clone
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

func (r *fakeAccountRepo) FindByLogin(_ context.Context, login string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	for _, account := range r.accounts {
		if account.Login == login {
			return cloneAccount(account), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindAllActive(_ context.Context) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	active := make([]*entity.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		if account.IsActive() {
			active = append(active, cloneAccount(account))
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	return active, nil
}

func (r *fakeAccountRepo) FindBornOnOrAfter(_ context.Context, cutoff time.Time) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	matched := make([]*entity.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		if account.Birthday != nil && !account.Birthday.Before(cutoff) {
			matched = append(matched, cloneAccount(account))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}

func (r *fakeAccountRepo) AnyAdminExists(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return false, r.failWith
	}

	for _, account := range r.accounts {
		if account.Admin {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	for _, existing := range r.accounts {
		if existing.Login == account.Login {
			return errors.Wrap(domainerrors.ErrLoginConflict, "login already exists")
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[account.ID] = cloneAccount(account)

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	r.accounts[account.ID] = cloneAccount(account)

	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.accounts, account.ID)

	return nil
}

// get returns the stored account by login for assertions, bypassing clones.
func (r *fakeAccountRepo) get(login string) *entity.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Login == login {
			return cloneAccount(account)
		}
	}

	return nil
}

// fakeTxManager runs the callback against the same in-memory repository,
// without any transactional isolation.
type fakeTxManager struct {
	repo *fakeAccountRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) AccountRepo() repository.AccountRepository {
	return m.repo
}

// fakeHasher is a transparent stand-in for the real key derivation scheme.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, encoded string) (bool, error) {
	if !strings.HasPrefix(encoded, "hashed:") {
		return false, domainerrors.ErrMalformedCredentialRecord
	}

	return encoded == "hashed:"+password, nil
}

// fakeTokenService issues predictable tokens for assertions.
type fakeTokenService struct {
	issueErr error
}

func (s *fakeTokenService) Issue(identity entity.Identity) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	return "token:" + identity.Login + ":" + string(identity.Role), nil
}

func (s *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	parts := strings.Split(tokenString, ":")
	if len(parts) != 3 || parts[0] != "token" {
		return nil, errors.New("malformed token")
	}

	return &service.Claims{Name: parts[1], Role: parts[2]}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// accountFixture builds a stored account with sane defaults.
type accountFixture struct {
	login    string
	password string
	name     string
	admin    bool
	revoked  bool
	birthday *time.Time
}

func (f accountFixture) build() *entity.Account {
	name := f.name
	if name == "" {
		name = "Fixture"
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Login:        f.login,
		PasswordHash: "hashed:" + f.password,
		Name:         name,
		Gender:       entity.GenderUnknown,
		Birthday:     f.birthday,
		Admin:        f.admin,
		CreatedAt:    time.Now().Add(-time.Hour),
		CreatedBy:    "admin",
		ModifiedAt:   time.Now().Add(-time.Hour),
		ModifiedBy:   "admin",
	}
	if f.revoked {
		account.Revoke(time.Now().Add(-time.Minute), "admin")
	}

	return account
}

func adminIdentity() entity.Identity {
	return entity.Identity{Login: "admin", Role: entity.RoleAdmin}
}

func userIdentity(login string) entity.Identity {
	return entity.Identity{Login: login, Role: entity.RoleUser}
}
