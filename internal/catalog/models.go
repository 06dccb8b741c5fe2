package catalog

// Catalog is the static BlockEdge project asset, keyed by standard code
// (VCS, GS, CDM, ...).
type Catalog struct {
	CarbonCreditProjects map[string]Standard `json:"carbonCreditProjects"`
}

// Standard groups the projects certified under one carbon standard.
type Standard struct {
	StandardName string    `json:"standardName"`
	Registry     string    `json:"registry"`
	Projects     []Project `json:"projects"`
}

// Project is one raw catalog record. Token is the fungible credit contract,
// Cert the certificate NFT contract; either may be empty for unlisted
// projects.
type Project struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Country     string `json:"country"`
	Methodology string `json:"methodology"`
	Token       string `json:"token"`
	Cert        string `json:"cert"`
}

// ProjectCount returns the total number of records across all standards.
func (c *Catalog) ProjectCount() int {
	n := 0
	for _, std := range c.CarbonCreditProjects {
		n += len(std.Projects)
	}
	return n
}
