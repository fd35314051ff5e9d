package main

import (
	"bytes"
	"context"
	"math/big"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallet-atm/config"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainService struct{}

func (chainService) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(31337))
}

func testChainConfig(url string) config.ChainConfig {
	return config.ChainConfig{
		RPCURL:          url,
		ContractAddress: config.DefaultContractAddress,
		ArtifactPath:    "../../artifacts/contracts/Assessment.sol/Assessment.json",
		PollInterval:    time.Millisecond,
		DialTimeout:     time.Second,
	}
}

func TestOpenWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("binds the contract", func(t *testing.T) {
		server := rpc.NewServer()
		require.NoError(t, server.RegisterName("eth", chainService{}))
		defer server.Stop()
		ts := httptest.NewServer(server)
		defer ts.Close()

		var buf bytes.Buffer
		provider, binder, rpcProvider, err := openWallet(ctx, testChainConfig(ts.URL), zerolog.New(&buf))
		require.NoError(t, err)
		require.NotNil(t, rpcProvider)
		defer rpcProvider.Close()
		assert.NotNil(t, provider)
		assert.NotNil(t, binder)

		out := buf.String()
		assert.Equal(t, 1, strings.Count(out, "Wallet provider connected"))
		assert.Equal(t, 1, strings.Count(out, "ATM contract bound"))
	})

	t.Run("no endpoint means no wallet", func(t *testing.T) {
		provider, binder, rpcProvider, err := openWallet(ctx, testChainConfig(""), zerolog.Nop())
		require.NoError(t, err)
		assert.Nil(t, provider)
		assert.Nil(t, binder)
		assert.Nil(t, rpcProvider)
	})

	t.Run("unreachable endpoint means no wallet", func(t *testing.T) {
		ts := httptest.NewServer(rpc.NewServer())
		url := ts.URL
		ts.Close()

		provider, binder, _, err := openWallet(ctx, testChainConfig(url), zerolog.Nop())
		require.NoError(t, err)
		assert.Nil(t, provider)
		assert.Nil(t, binder)
	})

	t.Run("bad artifact fails startup", func(t *testing.T) {
		server := rpc.NewServer()
		require.NoError(t, server.RegisterName("eth", chainService{}))
		defer server.Stop()
		ts := httptest.NewServer(server)
		defer ts.Close()

		cfg := testChainConfig(ts.URL)
		cfg.ArtifactPath = "missing.json"
		_, _, _, err := openWallet(ctx, cfg, zerolog.Nop())
		assert.Error(t, err)
	})
}
