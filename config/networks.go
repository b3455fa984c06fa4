package config

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultNetwork is used when a query does not name one.
const DefaultNetwork = "ethereum"

// ErrUnknownNetwork is returned for networks without a configured subgraph.
var ErrUnknownNetwork = errors.New("unsupported network, supported: ethereum, arbitrum, polygon, optimism, base")

// NetworkConfig identifies the Uniswap v3 subgraph deployment for one chain.
type NetworkConfig struct {
	SubgraphID string
	// StartBlockOffset approximates 30 days of blocks at the chain's rate.
	StartBlockOffset uint64
	// ApproxHeadBlock is a fixed head estimate, taken at the same point in
	// time for every chain. A production deployment would resolve the head
	// dynamically.
	ApproxHeadBlock uint64
	Name            string
}

var networks = map[string]NetworkConfig{
	"ethereum": {
		SubgraphID:       "5zvR82QoaXYFyDEKLZ9t6v9adgnptxYpKpSbxtgVENFV",
		StartBlockOffset: 216_000,
		ApproxHeadBlock:  18_500_000,
		Name:             "Ethereum",
	},
	"arbitrum": {
		SubgraphID:       "FbCGRftH4a3yZugY7TnbYgPJVEv2LvMT6oF1fxPe9aJM",
		StartBlockOffset: 2_160_000,
		ApproxHeadBlock:  150_000_000,
		Name:             "Arbitrum One",
	},
	"polygon": {
		SubgraphID:       "3hCPRGf4z88VC5rsBKU5AA9FBBq5nF3jbKJG7VZCbhjm",
		StartBlockOffset: 1_296_000,
		ApproxHeadBlock:  49_800_000,
		Name:             "Polygon",
	},
	"optimism": {
		SubgraphID:       "Cghf4LfVqPiFw6fp6Y5X5Ubc8UpmUhSfJL82zwiBFLaj",
		StartBlockOffset: 432_000,
		ApproxHeadBlock:  112_000_000,
		Name:             "Optimism",
	},
	"base": {
		SubgraphID:       "43Hwfi3dJSoGpyas9VkK2E9DiKpweh7jijkRBhWGwHJK",
		StartBlockOffset: 432_000,
		ApproxHeadBlock:  6_500_000,
		Name:             "Base",
	},
}

// NetworkByName resolves a network identifier case-insensitively.
// "mainnet" is accepted as an alias for ethereum.
func NetworkByName(name string) (NetworkConfig, error) {
	key := strings.ToLower(name)
	if key == "mainnet" {
		key = "ethereum"
	}
	n, ok := networks[key]
	if !ok {
		return NetworkConfig{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}
	return n, nil
}

// SubgraphURL builds the Graph gateway endpoint for this network.
func (n NetworkConfig) SubgraphURL(apiKey string) string {
	return fmt.Sprintf("https://gateway.thegraph.com/api/%s/subgraphs/id/%s", apiKey, n.SubgraphID)
}

// DefaultStartBlock approximates this chain's block ~30 days behind its head
// estimate. Queries without an explicit start block use it as their lower
// bound.
func (n NetworkConfig) DefaultStartBlock() uint64 {
	return n.ApproxHeadBlock - n.StartBlockOffset
}
