// Package ethereum talks to the wallet provider over Ethereum JSON-RPC and
// binds the ATM contract ABI on top of it.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"wallet-atm/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
)

// JSON-RPC method names
const (
	MethodRequestAccounts = "eth_requestAccounts"
	MethodAccounts        = "eth_accounts"
	MethodSendTransaction = "eth_sendTransaction"
	MethodCall            = "eth_call"
	MethodGetReceipt      = "eth_getTransactionReceipt"
	MethodChainID         = "eth_chainId"
)

const codeMethodNotFound = -32601

// ErrTxReverted is returned by Wait when a mined transaction failed.
var ErrTxReverted = errors.New("transaction reverted")

// RPCProvider is a ports.WalletProvider backed by a node or signer that
// holds unlocked accounts.
type RPCProvider struct {
	client       *rpc.Client
	pollInterval time.Duration
	log          zerolog.Logger
}

// Dial connects to url and checks that it answers eth_chainId.
func Dial(ctx context.Context, url string, pollInterval time.Duration, log zerolog.Logger) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}

	p := NewRPCProvider(client, pollInterval, log)
	chainID, err := p.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("probing %s: %w", url, err)
	}

	log.Info().Str("rpc_url", url).Str("chain_id", chainID.String()).Msg("Wallet provider connected")
	return p, nil
}

func NewRPCProvider(client *rpc.Client, pollInterval time.Duration, log zerolog.Logger) *RPCProvider {
	return &RPCProvider{
		client:       client,
		pollInterval: pollInterval,
		log:          log.With().Str("component", "wallet_provider").Logger(),
	}
}

// RequestAccounts asks for eth_requestAccounts when interactive. Nodes that
// predate EIP-1102 answer "method not found"; those fall back to eth_accounts.
func (p *RPCProvider) RequestAccounts(ctx context.Context, interactive bool) ([]string, error) {
	var accounts []common.Address

	if interactive {
		err := p.client.CallContext(ctx, &accounts, MethodRequestAccounts)
		if err == nil {
			return hexAddresses(accounts), nil
		}
		if !isMethodNotFound(err) {
			return nil, fmt.Errorf("%s: %w", MethodRequestAccounts, err)
		}
		p.log.Debug().Msg("eth_requestAccounts not supported, using eth_accounts")
	}

	if err := p.client.CallContext(ctx, &accounts, MethodAccounts); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodAccounts, err)
	}
	return hexAddresses(accounts), nil
}

func (p *RPCProvider) SendTransaction(ctx context.Context, msg ports.CallMsg) (ports.PendingTx, error) {
	args, err := toTxArgs(msg)
	if err != nil {
		return nil, err
	}

	var hash common.Hash
	if err := p.client.CallContext(ctx, &hash, MethodSendTransaction, args); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodSendTransaction, err)
	}

	p.log.Info().Str("tx_hash", hash.Hex()).Str("from", msg.From).Str("to", msg.To).Msg("Transaction submitted")
	return &pendingTx{hash: hash, provider: p}, nil
}

func (p *RPCProvider) Call(ctx context.Context, msg ports.CallMsg) ([]byte, error) {
	args, err := toTxArgs(msg)
	if err != nil {
		return nil, err
	}

	var out hexutil.Bytes
	if err := p.client.CallContext(ctx, &out, MethodCall, args, "latest"); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodCall, err)
	}
	return out, nil
}

// ChainID returns the chain the provider is attached to.
func (p *RPCProvider) ChainID(ctx context.Context) (*big.Int, error) {
	var id hexutil.Big
	if err := p.client.CallContext(ctx, &id, MethodChainID); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodChainID, err)
	}
	return id.ToInt(), nil
}

func (p *RPCProvider) Close() {
	p.client.Close()
}

type pendingTx struct {
	hash     common.Hash
	provider *RPCProvider
}

func (tx *pendingTx) Hash() string {
	return tx.hash.Hex()
}

// Wait polls for the receipt until it appears or ctx ends. Transport
// failures are retried on the next tick; an error reply from the node ends
// the wait.
func (tx *pendingTx) Wait(ctx context.Context) error {
	ticker := time.NewTicker(tx.provider.pollInterval)
	defer ticker.Stop()

	for {
		var r *receipt
		err := tx.provider.client.CallContext(ctx, &r, MethodGetReceipt, tx.hash)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return ctx.Err()
		case isRPCError(err):
			return fmt.Errorf("%s %s: %w", MethodGetReceipt, tx.hash.Hex(), err)
		default:
			tx.provider.log.Warn().Err(err).Str("tx_hash", tx.hash.Hex()).Msg("Receipt poll failed, retrying")
			r = nil
		}
		if r != nil {
			if uint64(r.Status) != types.ReceiptStatusSuccessful {
				return fmt.Errorf("%w: %s", ErrTxReverted, tx.hash.Hex())
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// txArgs is the transaction object shared by eth_call and eth_sendTransaction.
type txArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to,omitempty"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Data  hexutil.Bytes   `json:"data,omitempty"`
}

// receipt holds the fields Wait reads. types.Receipt requires logs and bloom
// on decode.
type receipt struct {
	TxHash      common.Hash    `json:"transactionHash"`
	Status      hexutil.Uint64 `json:"status"`
	BlockNumber *hexutil.Big   `json:"blockNumber"`
}

func toTxArgs(msg ports.CallMsg) (txArgs, error) {
	if !common.IsHexAddress(msg.From) {
		return txArgs{}, fmt.Errorf("invalid from address %q", msg.From)
	}
	args := txArgs{From: common.HexToAddress(msg.From), Data: msg.Data}
	if msg.To != "" {
		if !common.IsHexAddress(msg.To) {
			return txArgs{}, fmt.Errorf("invalid to address %q", msg.To)
		}
		to := common.HexToAddress(msg.To)
		args.To = &to
	}
	if msg.Value != nil {
		args.Value = (*hexutil.Big)(msg.Value)
	}
	return args, nil
}

func hexAddresses(accounts []common.Address) []string {
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = a.Hex()
	}
	return out
}

// isRPCError reports whether err is an error reply from the node rather than
// a failure to reach it.
func isRPCError(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr)
}

func isMethodNotFound(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeMethodNotFound
}
