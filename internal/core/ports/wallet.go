package ports

//go:generate mockgen -source=wallet.go -destination=mocks/wallet_mock.go -package=mocks

import (
	"context"
	"math/big"
)

// CallMsg describes a contract call or transaction request.
type CallMsg struct {
	From  string
	To    string
	Value *big.Int // nil = no attached value
	Data  []byte
}

// WalletProvider is the user's wallet: it holds the keys, authorizes
// accounts and signs what it sends.
type WalletProvider interface {
	// RequestAccounts lists the authorized accounts. interactive asks the
	// wallet to prompt the user; otherwise only existing grants are returned.
	RequestAccounts(ctx context.Context, interactive bool) ([]string, error)
	// SendTransaction signs and submits a state-changing call.
	SendTransaction(ctx context.Context, msg CallMsg) (PendingTx, error)
	// Call runs a read-only call against the latest state.
	Call(ctx context.Context, msg CallMsg) ([]byte, error)
}

// PendingTx is a submitted transaction.
type PendingTx interface {
	Hash() string
	// Wait blocks until the transaction is finalized. A reverted
	// transaction is reported as an error.
	Wait(ctx context.Context) error
}

// ATMContract is a handle on the deployed ATM contract, bound to one account.
type ATMContract interface {
	Address() string
	GetBalance(ctx context.Context) (*big.Int, error)
	// Deposit submits deposit(amount) with value wei attached.
	Deposit(ctx context.Context, amount, value *big.Int) (PendingTx, error)
	Withdraw(ctx context.Context, amount *big.Int) (PendingTx, error)
}

// ContractBinder creates contract handles for a connected account.
type ContractBinder interface {
	Bind(account string) (ATMContract, error)
}
