package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wallet-atm/internal/core/domain"
	"wallet-atm/internal/core/ports"
	"wallet-atm/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type inflightKey struct {
	sessionID string
	category  domain.Category
}

// SessionControllerImpl implements ports.SessionController.
type SessionControllerImpl struct {
	store    ports.SessionStore
	provider ports.WalletProvider // nil when no wallet is available
	binder   ports.ContractBinder
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	handles  map[string]ports.ATMContract
	inflight map[inflightKey]struct{}
}

// NewSessionController creates a controller. provider and binder are nil
// when no wallet provider could be reached.
func NewSessionController(
	store ports.SessionStore,
	provider ports.WalletProvider,
	binder ports.ContractBinder,
	log zerolog.Logger,
) *SessionControllerImpl {
	return &SessionControllerImpl{
		store:    store,
		provider: provider,
		binder:   binder,
		log:      log.With().Str("component", "session_controller").Logger(),
		now:      time.Now,
		handles:  make(map[string]ports.ATMContract),
		inflight: make(map[inflightKey]struct{}),
	}
}

// Start creates a session, then detects the wallet and loads any accounts
// the wallet has already authorized.
func (s *SessionControllerImpl) Start(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession(uuid.NewString(), s.now())
	if err := s.store.Create(ctx, session); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("creating session: %w", err))
	}
	s.log.Debug().Str("session_id", session.ID).Msg("Session started")

	if _, err := s.DetectWallet(ctx, session.ID); err != nil {
		return nil, err
	}
	return s.QueryAccounts(ctx, session.ID)
}

func (s *SessionControllerImpl) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.Dispatch(ctx, sessionID, domain.Touched{At: s.now()})
	if err != nil {
		return nil, storeError(err)
	}
	return session, nil
}

func (s *SessionControllerImpl) Snapshot(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, storeError(err)
	}
	return session, nil
}

func (s *SessionControllerImpl) DetectWallet(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.Dispatch(ctx, sessionID, domain.WalletDetected{Available: s.provider != nil})
	if err != nil {
		return nil, storeError(err)
	}
	return session, nil
}

// QueryAccounts asks the wallet for accounts without prompting. Failures
// are logged and leave the session as it was.
func (s *SessionControllerImpl) QueryAccounts(ctx context.Context, sessionID string) (*domain.Session, error) {
	if s.provider == nil {
		return s.Snapshot(ctx, sessionID)
	}

	accounts, err := s.provider.RequestAccounts(ctx, false)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("Account query failed")
		return s.Snapshot(ctx, sessionID)
	}

	session, err := s.store.Dispatch(ctx, sessionID, domain.AccountsLoaded{Accounts: accounts})
	if err != nil {
		return nil, storeError(err)
	}
	if !session.IsConnected() {
		s.dropHandle(sessionID)
	}
	return session, nil
}

// Connect asks the wallet to authorize an account and binds the ATM
// contract to it. It can be called again to re-authorize.
func (s *SessionControllerImpl) Connect(ctx context.Context, sessionID string) (*domain.Session, error) {
	if _, err := s.Snapshot(ctx, sessionID); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, apperror.ErrWalletRequired()
	}

	accounts, err := s.provider.RequestAccounts(ctx, true)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("Wallet connection failed")
		return nil, apperror.ErrConnectFailed(err)
	}
	if len(accounts) == 0 {
		return nil, apperror.ErrConnectFailed(errors.New("wallet returned no accounts"))
	}

	account := accounts[0]
	handle, err := s.binder.Bind(account)
	if err != nil {
		return nil, apperror.ErrConnectFailed(fmt.Errorf("binding contract: %w", err))
	}

	s.mu.Lock()
	s.handles[sessionID] = handle
	s.mu.Unlock()

	session, err := s.store.Dispatch(ctx, sessionID, domain.Connected{Account: account, Contract: handle.Address()})
	if err != nil {
		s.dropHandle(sessionID)
		return nil, storeError(err)
	}

	s.log.Info().Str("session_id", sessionID).Str("account", account).Msg("Wallet connected")
	return session, nil
}

// RefreshBalance reads the balance from the contract. Without a bound
// contract it returns the session unchanged.
func (s *SessionControllerImpl) RefreshBalance(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	handle := s.handle(sessionID)
	if !session.IsConnected() || handle == nil {
		return session, nil
	}

	raw, err := handle.GetBalance(ctx)
	if err != nil {
		return nil, apperror.ErrBalanceUnavailable(err)
	}
	balance, err := domain.BalanceFromBig(raw)
	if err != nil {
		return nil, apperror.ErrBalanceUnavailable(fmt.Errorf("balance %s: %w", raw, err))
	}

	session, err = s.store.Dispatch(ctx, sessionID, domain.BalanceLoaded{Balance: balance})
	if err != nil {
		return nil, storeError(err)
	}
	return session, nil
}

func (s *SessionControllerImpl) Deposit(ctx context.Context, sessionID string, amount string) (*domain.NotificationEntry, error) {
	return s.mutate(ctx, sessionID, domain.CategoryDeposit, amount)
}

func (s *SessionControllerImpl) Withdraw(ctx context.Context, sessionID string, amount string) (*domain.NotificationEntry, error) {
	return s.mutate(ctx, sessionID, domain.CategoryWithdrawal, amount)
}

// mutate submits a deposit or withdrawal and records its outcome. Invalid
// requests are rejected before anything is sent. Once submitted, a failed
// transaction becomes a failure notification rather than an error.
func (s *SessionControllerImpl) mutate(ctx context.Context, sessionID string, category domain.Category, raw string) (*domain.NotificationEntry, error) {
	session, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	handle := s.handle(sessionID)
	if !session.IsConnected() || handle == nil {
		return nil, apperror.ErrNotConnected()
	}
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(err)
	}

	if !s.acquire(sessionID, category) {
		return nil, apperror.ErrOperationInFlight(string(category))
	}
	defer s.release(sessionID, category)

	log := s.log.With().
		Str("session_id", sessionID).
		Str("account", session.Account).
		Str("category", string(category)).
		Str("amount", amount.String()).
		Logger()

	// The wallet has the transaction once it is sent; the outcome is
	// recorded even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	txErr := submit(ctx, handle, category, amount, log)
	if txErr != nil {
		log.Warn().Err(txErr).Msg("Transaction failed")
	}

	entry := domain.NewNotification(category, amount, txErr == nil, s.now())
	if _, err := s.store.Dispatch(ctx, sessionID, domain.NotificationAdded{Entry: entry}); err != nil {
		return nil, storeError(err)
	}

	if txErr == nil {
		if _, err := s.RefreshBalance(ctx, sessionID); err != nil {
			log.Warn().Err(err).Msg("Balance refresh after transaction failed")
		}
	}
	return &entry, nil
}

func submit(ctx context.Context, handle ports.ATMContract, category domain.Category, amount domain.Amount, log zerolog.Logger) error {
	var (
		tx  ports.PendingTx
		err error
	)
	switch category {
	case domain.CategoryDeposit:
		tx, err = handle.Deposit(ctx, amount.Units(), amount.Wei())
	case domain.CategoryWithdrawal:
		tx, err = handle.Withdraw(ctx, amount.Units())
	default:
		return fmt.Errorf("unknown category %q", category)
	}
	if err != nil {
		return fmt.Errorf("submitting %s: %w", category, err)
	}

	log.Info().Str("tx_hash", tx.Hash()).Msg("Waiting for transaction")
	if err := tx.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for %s: %w", tx.Hash(), err)
	}
	log.Info().Str("tx_hash", tx.Hash()).Msg("Transaction confirmed")
	return nil
}

func (s *SessionControllerImpl) ClearNotifications(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.Dispatch(ctx, sessionID, domain.NotificationsCleared{})
	if err != nil {
		return nil, storeError(err)
	}
	return session, nil
}

// EvictIdle removes sessions not seen within ttl together with their
// contract handles.
func (s *SessionControllerImpl) EvictIdle(ctx context.Context, ttl time.Duration) (int, error) {
	evicted, err := s.store.DeleteIdle(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("evicting idle sessions: %w", err))
	}

	s.mu.Lock()
	for _, id := range evicted {
		delete(s.handles, id)
	}
	s.mu.Unlock()

	return len(evicted), nil
}

func (s *SessionControllerImpl) handle(sessionID string) ports.ATMContract {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handles[sessionID]
}

func (s *SessionControllerImpl) dropHandle(sessionID string) {
	s.mu.Lock()
	delete(s.handles, sessionID)
	s.mu.Unlock()
}

func (s *SessionControllerImpl) acquire(sessionID string, category domain.Category) bool {
	key := inflightKey{sessionID: sessionID, category: category}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *SessionControllerImpl) release(sessionID string, category domain.Category) {
	s.mu.Lock()
	delete(s.inflight, inflightKey{sessionID: sessionID, category: category})
	s.mu.Unlock()
}

func storeError(err error) error {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return apperror.ErrInvalidSession()
	}
	return apperror.InternalError(err)
}
