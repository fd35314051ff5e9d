package ethereum

import (
	"bytes"
	"errors"
	"io"
	"math/big"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testOwner    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testChainID  = 31337
)

// fakeNode is an in-process stand-in for a Hardhat node running the ATM
// contract. Only the handful of eth_ methods the adapter uses exist.
type fakeNode struct {
	mu           sync.Mutex
	abi          abi.ABI
	accounts     []common.Address
	balance      *big.Int
	noCode       bool
	sendErr      error
	receiptErr   error
	pendingPolls int
	polls        map[common.Hash]int
	receipts     map[common.Hash]*receipt
	sent         []txArgs
	nonce        uint64
}

type fakeEth struct{ node *fakeNode }

// walletEth adds eth_requestAccounts on top of a plain node.
type walletEth struct{ *fakeEth }

func (w *walletEth) RequestAccounts() []common.Address {
	return w.Accounts()
}

func (e *fakeEth) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(testChainID))
}

func (e *fakeEth) Accounts() []common.Address {
	e.node.mu.Lock()
	defer e.node.mu.Unlock()
	return append([]common.Address(nil), e.node.accounts...)
}

func (e *fakeEth) Call(args txArgs, block string) (hexutil.Bytes, error) {
	n := e.node
	n.mu.Lock()
	defer n.mu.Unlock()

	if block != "latest" {
		return nil, errors.New("unexpected block tag " + block)
	}
	if n.noCode {
		return hexutil.Bytes{}, nil
	}
	method, err := n.abi.MethodById(args.Data)
	if err != nil {
		return nil, err
	}
	if method.Name != methodGetBalance {
		return nil, errors.New("unexpected call " + method.Name)
	}
	return method.Outputs.Pack(new(big.Int).Set(n.balance))
}

func (e *fakeEth) SendTransaction(args txArgs) (common.Hash, error) {
	n := e.node
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sendErr != nil {
		return common.Hash{}, n.sendErr
	}
	method, err := n.abi.MethodById(args.Data)
	if err != nil {
		return common.Hash{}, err
	}
	values, err := method.Inputs.Unpack(args.Data[4:])
	if err != nil {
		return common.Hash{}, err
	}
	amount := values[0].(*big.Int)

	status := types.ReceiptStatusSuccessful
	switch method.Name {
	case methodDeposit:
		n.balance.Add(n.balance, amount)
	case methodWithdraw:
		if amount.Cmp(n.balance) > 0 {
			status = types.ReceiptStatusFailed
		} else {
			n.balance.Sub(n.balance, amount)
		}
	default:
		return common.Hash{}, errors.New("unexpected transaction " + method.Name)
	}

	n.nonce++
	hash := common.BigToHash(new(big.Int).SetUint64(n.nonce))
	n.receipts[hash] = &receipt{
		TxHash:      hash,
		Status:      hexutil.Uint64(status),
		BlockNumber: (*hexutil.Big)(new(big.Int).SetUint64(n.nonce)),
	}
	n.sent = append(n.sent, args)
	return hash, nil
}

func (e *fakeEth) GetTransactionReceipt(hash common.Hash) (*receipt, error) {
	n := e.node
	n.mu.Lock()
	defer n.mu.Unlock()

	n.polls[hash]++
	if n.receiptErr != nil {
		return nil, n.receiptErr
	}
	if n.polls[hash] <= n.pendingPolls {
		return nil, nil
	}
	return n.receipts[hash], nil
}

func (n *fakeNode) Balance() *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return new(big.Int).Set(n.balance)
}

func (n *fakeNode) Sent() []txArgs {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]txArgs(nil), n.sent...)
}

func testABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := LoadABI("testdata/Assessment.json")
	require.NoError(t, err)
	return parsed
}

// newFakeServer starts the fake node behind an rpc.Server. withRequestAccounts
// controls whether eth_requestAccounts is implemented.
func newFakeServer(t *testing.T, withRequestAccounts bool) (*fakeNode, *rpc.Server) {
	t.Helper()
	node := &fakeNode{
		abi:      testABI(t),
		accounts: []common.Address{common.HexToAddress(testOwner)},
		balance:  big.NewInt(1),
		polls:    make(map[common.Hash]int),
		receipts: make(map[common.Hash]*receipt),
	}

	server := rpc.NewServer()
	var svc any = &fakeEth{node: node}
	if withRequestAccounts {
		svc = &walletEth{&fakeEth{node: node}}
	}
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)
	return node, server
}

// flakyHandler answers the first failures receipt polls with 502 before the
// request reaches the node.
type flakyHandler struct {
	next     http.Handler
	mu       sync.Mutex
	failures int
}

func (h *flakyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	h.mu.Lock()
	fail := h.failures > 0 && bytes.Contains(body, []byte(MethodGetReceipt))
	if fail {
		h.failures--
	}
	h.mu.Unlock()

	if fail {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	h.next.ServeHTTP(w, r)
}

func newFakeProvider(t *testing.T, withRequestAccounts bool) (*fakeNode, *RPCProvider) {
	t.Helper()
	node, server := newFakeServer(t, withRequestAccounts)
	client := rpc.DialInProc(server)
	t.Cleanup(client.Close)
	return node, NewRPCProvider(client, 5*time.Millisecond, zerolog.Nop())
}
