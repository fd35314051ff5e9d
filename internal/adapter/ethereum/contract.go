package ethereum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"wallet-atm/internal/core/ports"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ATM contract methods
const (
	methodGetBalance = "getBalance"
	methodDeposit    = "deposit"
	methodWithdraw   = "withdraw"
)

// ErrNoContractCode means eth_call returned nothing, usually because no
// contract is deployed at the configured address.
var ErrNoContractCode = errors.New("no contract code at address")

type artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
}

// LoadABI reads a compiled contract artifact ({"abi": [...]}) or a bare ABI
// array from path.
func LoadABI(path string) (abi.ABI, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("reading contract artifact: %w", err)
	}
	parsed, err := ParseABI(raw)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// ParseABI parses artifact or ABI JSON and checks the ATM methods exist.
func ParseABI(raw []byte) (abi.ABI, error) {
	abiJSON := bytes.TrimSpace(raw)
	if len(abiJSON) == 0 || abiJSON[0] != '[' {
		var a artifact
		if err := json.Unmarshal(abiJSON, &a); err != nil {
			return abi.ABI{}, fmt.Errorf("decoding artifact: %w", err)
		}
		if len(a.ABI) == 0 {
			return abi.ABI{}, errors.New("artifact has no abi")
		}
		abiJSON = a.ABI
	}

	parsed, err := abi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing abi: %w", err)
	}
	for _, name := range []string{methodGetBalance, methodDeposit, methodWithdraw} {
		if _, ok := parsed.Methods[name]; !ok {
			return abi.ABI{}, fmt.Errorf("abi is missing method %s", name)
		}
	}
	return parsed, nil
}

// Binder hands out contract handles for the one deployed ATM contract.
type Binder struct {
	provider ports.WalletProvider
	address  common.Address
	abi      abi.ABI
}

func NewBinder(provider ports.WalletProvider, address string, parsed abi.ABI) (*Binder, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid contract address %q", address)
	}
	return &Binder{provider: provider, address: common.HexToAddress(address), abi: parsed}, nil
}

// Bind returns a handle whose calls and transactions are sent from account.
func (b *Binder) Bind(account string) (ports.ATMContract, error) {
	if !common.IsHexAddress(account) {
		return nil, fmt.Errorf("invalid account %q", account)
	}
	return &ATM{
		provider: b.provider,
		address:  b.address,
		from:     common.HexToAddress(account),
		abi:      b.abi,
	}, nil
}

// ATM is a ports.ATMContract bound to a sender account.
type ATM struct {
	provider ports.WalletProvider
	address  common.Address
	from     common.Address
	abi      abi.ABI
}

func (c *ATM) Address() string {
	return c.address.Hex()
}

func (c *ATM) GetBalance(ctx context.Context) (*big.Int, error) {
	data, err := c.abi.Pack(methodGetBalance)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", methodGetBalance, err)
	}

	out, err := c.provider.Call(ctx, c.msg(nil, data))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s at %s: %w", methodGetBalance, c.address.Hex(), ErrNoContractCode)
	}

	values, err := c.abi.Unpack(methodGetBalance, out)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", methodGetBalance, err)
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned %T, want uint256", methodGetBalance, values[0])
	}
	return balance, nil
}

func (c *ATM) Deposit(ctx context.Context, amount, value *big.Int) (ports.PendingTx, error) {
	return c.transact(ctx, value, methodDeposit, amount)
}

func (c *ATM) Withdraw(ctx context.Context, amount *big.Int) (ports.PendingTx, error) {
	return c.transact(ctx, nil, methodWithdraw, amount)
}

func (c *ATM) transact(ctx context.Context, value *big.Int, method string, args ...any) (ports.PendingTx, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	return c.provider.SendTransaction(ctx, c.msg(value, data))
}

func (c *ATM) msg(value *big.Int, data []byte) ports.CallMsg {
	return ports.CallMsg{
		From:  c.from.Hex(),
		To:    c.address.Hex(),
		Value: value,
		Data:  data,
	}
}
