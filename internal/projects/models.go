package projects

import "encoding/json"

// DataSource tags whether a project's figures were derived from on-chain data
// or synthesized. The UI relies on this to distinguish verified numbers from
// estimates.
type DataSource string

const (
	DataSourceOnChain   DataSource = "onchain"
	DataSourceEstimated DataSource = "estimated"
)

// Supply is the token supply breakdown in whole tokens (1 token = 1 tCO2e).
type Supply struct {
	Total     float64 `json:"total"`
	Available float64 `json:"available"`
	Retired   float64 `json:"retired"`
}

// CO2Reduction carries formatted reduction figures for display.
type CO2Reduction struct {
	Total  string `json:"total"`
	Annual string `json:"annual"`
	Unit   string `json:"unit"`
}

// Pricing is the indicative market pricing for a project's credits.
type Pricing struct {
	CurrentPrice float64 `json:"current_price"`
	Currency     string  `json:"currency"`
}

// ProjectData is the dashboard's view of one carbon-credit project, assembled
// from a catalog record plus, when available, the explorer's token data.
// Instances are immutable once constructed; a refresh builds new ones.
type ProjectData struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Type               string       `json:"type"`
	Location           string       `json:"location"`
	Country            string       `json:"country"`
	TokenAddress       string       `json:"token_address"`
	CertAddress        string       `json:"cert_address"`
	Supply             Supply       `json:"supply"`
	CO2Reduction       CO2Reduction `json:"co2_reduction"`
	Pricing            Pricing      `json:"pricing"`
	InvestmentEstimate float64      `json:"investment_estimate"`
	Registry           string       `json:"registry"`
	Methodology        string       `json:"methodology"`
	Compliance         []string     `json:"compliance"`
	Holders            int64        `json:"holders"`
	Transfers          int64        `json:"transfers"`
	DataSource         DataSource   `json:"data_source"`
}

// RetirementRate is the retired share of total supply, in [0, 1].
func (p *ProjectData) RetirementRate() float64 {
	if p.Supply.Total <= 0 {
		return 0
	}
	return p.Supply.Retired / p.Supply.Total
}

// NFTMetadata is a certificate NFT's display metadata, cached separately from
// project data because certificate images change far less often than supply
// figures.
type NFTMetadata struct {
	ContractAddress string          `json:"contract_address"`
	TokenID         string          `json:"token_id"`
	ImageURL        string          `json:"image_url"`
	Attributes      json.RawMessage `json:"attributes,omitempty"`
}

// CacheInfo describes one cache for the status endpoint.
type CacheInfo struct {
	Entries int      `json:"entries"`
	TTL     string   `json:"ttl"`
	Keys    []string `json:"keys"`
}

// CacheStatus reports the state of the service's caches.
type CacheStatus struct {
	Projects    CacheInfo `json:"projects"`
	NFTMetadata CacheInfo `json:"nft_metadata"`
}
