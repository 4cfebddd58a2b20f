package solana

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Cluster is the RPC endpoint of a public Solana cluster.
type Cluster string

const (
	ClusterDevnet      Cluster = "https://api.devnet.solana.com"
	ClusterTestnet     Cluster = "https://api.testnet.solana.com"
	ClusterMainnetBeta Cluster = "https://api.mainnet-beta.solana.com"
	ClusterLocalnet    Cluster = "http://127.0.0.1:8899"
)

var clusterAliases = map[string]Cluster{
	"devnet":       ClusterDevnet,
	"dev":          ClusterDevnet,
	"d":            ClusterDevnet,
	"testnet":      ClusterTestnet,
	"test":         ClusterTestnet,
	"t":            ClusterTestnet,
	"mainnet-beta": ClusterMainnetBeta,
	"mainnet":      ClusterMainnetBeta,
	"m":            ClusterMainnetBeta,
	"localnet":     ClusterLocalnet,
	"localhost":    ClusterLocalnet,
	"l":            ClusterLocalnet,
}

// Endpoint resolves a cluster moniker or an explicit http(s) URL to an RPC
// endpoint.
func Endpoint(cluster string) (string, error) {
	cluster = strings.TrimSpace(cluster)
	if c, ok := clusterAliases[strings.ToLower(cluster)]; ok {
		return string(c), nil
	}

	u, err := url.Parse(cluster)
	if err != nil {
		return "", errors.Wrapf(err, "invalid rpc endpoint %q", cluster)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Errorf("invalid rpc endpoint %q: expected a cluster name or http(s) url", cluster)
	}
	return cluster, nil
}
