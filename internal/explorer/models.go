package explorer

import "encoding/json"

// TokenInfo is the explorer's view of a credit token contract. Numeric fields
// arrive as decimal strings; TotalSupply can exceed int64 range.
type TokenInfo struct {
	Address      string `json:"address"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Type         string `json:"type"`
	TotalSupply  string `json:"total_supply"`
	Decimals     string `json:"decimals"`
	HoldersCount string `json:"holders_count"`
}

// NFTInstance is one certificate NFT with its image and attributes.
type NFTInstance struct {
	ID       string          `json:"id"`
	ImageURL string          `json:"image_url"`
	Metadata json.RawMessage `json:"metadata"`
}

// TokenCounters carries per-contract counters.
type TokenCounters struct {
	TokenHoldersCount string `json:"token_holders_count"`
	TransfersCount    string `json:"transfers_count"`
}

// transfersPage is the paged transfer listing; only the item count is used,
// as a fallback when the counters endpoint is unavailable.
type transfersPage struct {
	Items []json.RawMessage `json:"items"`
}

// NetworkStats is the explorer's chain-wide stats payload.
type NetworkStats struct {
	TotalBlocks       string    `json:"total_blocks"`
	TotalTransactions string    `json:"total_transactions"`
	TotalAddresses    string    `json:"total_addresses"`
	AverageBlockTime  float64   `json:"average_block_time"`
	GasPrices         GasPrices `json:"gas_prices"`
}

// GasPrices in gwei per speed tier.
type GasPrices struct {
	Slow    float64 `json:"slow"`
	Average float64 `json:"average"`
	Fast    float64 `json:"fast"`
}

// MainPageTransaction is a recent transaction from the explorer's main page
// feed.
type MainPageTransaction struct {
	Hash      string `json:"hash"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// MainPageBlock is a recent block from the explorer's main page feed.
type MainPageBlock struct {
	Height           int64  `json:"height"`
	Hash             string `json:"hash"`
	Timestamp        string `json:"timestamp"`
	TransactionCount int    `json:"transaction_count"`
}
