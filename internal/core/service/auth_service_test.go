package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

type stubUserRepo struct {
	accounts map[string]*domain.Account // keyed by id
	nextID   int
	finds    int // store reads, to assert fail-fast ordering
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == account.Username {
			return nil, domain.ErrUsernameTaken
		}
		if a.Email == account.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = strconv.Itoa(r.nextID)
	r.accounts[copy.ID] = cloneAccount(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.finds++
	for _, a := range r.accounts {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.finds++
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.finds++
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Role = role
	return cloneAccount(a), nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Active = active
	return cloneAccount(a), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *cloneAccount(a))
	}
	return out, nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	tokens := NewTokenService("secret", 30*time.Minute)
	return NewAuthService(repo, hasher, tokens)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	account, err := svc.Register(context.Background(), "alice", "alice@example.com", "Valid1Pass!")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.ID == "" {
		t.Fatal("expected store-assigned id")
	}
	if account.PasswordHash == "Valid1Pass!" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("Valid1Pass!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", account.Role)
	}
	if !account.Active {
		t.Fatal("expected new account to be active")
	}
	if account.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be stamped")
	}
}

func TestAuthService_Register_PolicyViolationBeforeStore(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "bob", "bob@example.com", "weak")
	var pv *domain.PolicyViolation
	if !errors.As(err, &pv) {
		t.Fatalf("expected PolicyViolation, got %v", err)
	}
	if repo.finds != 0 {
		t.Fatalf("expected no store reads on policy failure, got %d", repo.finds)
	}
}

func TestAuthService_Register_OverlongPassword(t *testing.T) {
	// Past bcrypt's 72-byte input limit the policy rejects up front, so the
	// caller gets a fixable validation error instead of a hashing failure.
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	long := "Aa1!" + strings.Repeat("x", 69)
	_, err := svc.Register(context.Background(), "dave", "dave@example.com", long)
	var pv *domain.PolicyViolation
	if !errors.As(err, &pv) {
		t.Fatalf("expected PolicyViolation, got %v", err)
	}
	if repo.finds != 0 {
		t.Fatalf("expected no store reads on policy failure, got %d", repo.finds)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	first, err := svc.Register(context.Background(), "carol", "carol@example.com", "Valid1Pass!")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), "carol", "other@example.com", "Valid1Pass!"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// First account unaffected.
	kept, err := repo.FindByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("first account missing: %v", err)
	}
	if kept.Email != "carol@example.com" {
		t.Fatalf("first account mutated: %+v", kept)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "dave", "dave@example.com", "Valid1Pass!"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "dan", "dave@example.com", "Valid1Pass!"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "erin", "erin@example.com", "Valid1Pass!"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, expiresIn, err := svc.Login(context.Background(), "erin", "Valid1Pass!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}
	if expiresIn <= 0 || expiresIn > 30*time.Minute {
		t.Fatalf("unexpected expiry window: %v", expiresIn)
	}

	claims, err := svc.tokens.Validate(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Subject != "erin" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_UniformInvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "frank", "frank@example.com", "Valid1Pass!"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "frank", "Wrong1Pass!")
	_, _, unknownUser := svc.Login(context.Background(), "nobody", "Wrong1Pass!")

	// Wrong password and unknown username must be indistinguishable.
	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if fmt.Sprint(wrongPass) != fmt.Sprint(unknownUser) {
		t.Fatalf("error messages differ: %q vs %q", wrongPass, unknownUser)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	account, err := svc.Register(context.Background(), "grace", "grace@example.com", "Valid1Pass!")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := repo.SetActive(context.Background(), account.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "grace", "Valid1Pass!"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}

	// Inactive with the wrong password still reads as invalid credentials;
	// the inactive state is only revealed after the password matches.
	if _, _, err := svc.Login(context.Background(), "grace", "Wrong1Pass!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
