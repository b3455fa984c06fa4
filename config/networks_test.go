package config

import (
	"errors"
	"strings"
	"testing"
)

func TestNetworkByName(t *testing.T) {
	for _, name := range []string{"ethereum", "arbitrum", "polygon", "optimism", "base"} {
		n, err := NetworkByName(name)
		if err != nil {
			t.Errorf("network %q: %v", name, err)
		}
		if n.SubgraphID == "" {
			t.Errorf("network %q: missing subgraph id", name)
		}
	}
}

func TestNetworkByNameAliasAndCase(t *testing.T) {
	eth, err := NetworkByName("ethereum")
	if err != nil {
		t.Fatal(err)
	}

	alias, err := NetworkByName("mainnet")
	if err != nil {
		t.Fatalf("mainnet alias: %v", err)
	}
	if alias.SubgraphID != eth.SubgraphID {
		t.Error("mainnet must resolve to the ethereum subgraph")
	}

	upper, err := NetworkByName("ETHEREUM")
	if err != nil {
		t.Fatalf("uppercase lookup: %v", err)
	}
	if upper.SubgraphID != eth.SubgraphID {
		t.Error("lookup must be case-insensitive")
	}
}

func TestNetworkByNameUnknown(t *testing.T) {
	_, err := NetworkByName("dogechain")
	if !errors.Is(err, ErrUnknownNetwork) {
		t.Errorf("expected ErrUnknownNetwork, got %v", err)
	}
	if !strings.Contains(err.Error(), "dogechain") {
		t.Errorf("expected the bad name in the error, got %v", err)
	}
}

func TestSubgraphURL(t *testing.T) {
	n, err := NetworkByName("ethereum")
	if err != nil {
		t.Fatal(err)
	}

	url := n.SubgraphURL("my-key")
	want := "https://gateway.thegraph.com/api/my-key/subgraphs/id/" + n.SubgraphID
	if url != want {
		t.Errorf("expected %s, got %s", want, url)
	}
}

func TestDefaultStartBlock(t *testing.T) {
	// Roughly 30 days of blocks behind each chain's estimated head.
	eth, err := NetworkByName("ethereum")
	if err != nil {
		t.Fatal(err)
	}
	if got := eth.DefaultStartBlock(); got != 18_284_000 {
		t.Errorf("expected 18284000 for ethereum, got %d", got)
	}

	arb, err := NetworkByName("arbitrum")
	if err != nil {
		t.Fatal(err)
	}
	if got := arb.DefaultStartBlock(); got != 147_840_000 {
		t.Errorf("expected 147840000 for arbitrum, got %d", got)
	}
	if arb.DefaultStartBlock() == eth.DefaultStartBlock() {
		t.Error("default start block must differ per network")
	}
}
