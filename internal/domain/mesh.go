package domain

// MeshConfig describes the messaging mesh wired on top of the deployed
// contracts: which contracts take part, which workers they use and the
// pathways between them.
type MeshConfig struct {
	Workers   WorkerSettings       `yaml:"workers" json:"workers"`
	Contracts []ConfiguredEndpoint `yaml:"contracts" json:"contracts"`
	Pathways  []Pathway            `yaml:"pathways" json:"pathways"`
}

// WorkerSettings names the operator-deployed workers
type WorkerSettings struct {
	Slug         string `yaml:"slug" json:"slug"`
	ExecutorName string `yaml:"executorName" json:"executorName"`
	DVNName      string `yaml:"dvnName" json:"dvnName"`
	// ExecutorContract and DVNContract are the address-store names of the
	// worker contracts, e.g. SimpleExecutorMock.
	ExecutorContract string `yaml:"executorContract" json:"executorContract"`
	DVNContract      string `yaml:"dvnContract" json:"dvnContract"`
	// Addresses pins worker addresses per chain instead of reading the store.
	Addresses map[ChainID]CustomWorkers `yaml:"addresses,omitempty" json:"addresses,omitempty"`
}

// EndpointIDs returns the distinct chains of the configured contracts in
// configuration order.
func (m *MeshConfig) EndpointIDs() []ChainID {
	seen := make(map[ChainID]bool, len(m.Contracts))
	var ids []ChainID
	for _, c := range m.Contracts {
		if !seen[c.Chain] {
			seen[c.Chain] = true
			ids = append(ids, c.Chain)
		}
	}
	return ids
}

// Contract returns the configured contract on a chain.
func (m *MeshConfig) Contract(chain ChainID) (ConfiguredEndpoint, bool) {
	for _, c := range m.Contracts {
		if c.Chain == chain {
			return c, true
		}
	}
	return ConfiguredEndpoint{}, false
}

// Pathway is a two-way link between two configured contracts. Index 0 of the
// paired fields applies to From→To, index 1 to To→From.
type Pathway struct {
	From            ChainID            `yaml:"from" json:"from"`
	To              ChainID            `yaml:"to" json:"to"`
	RequiredDVNs    []string           `yaml:"requiredDVNs" json:"requiredDVNs"`
	OptionalDVNs    []string           `yaml:"optionalDVNs" json:"optionalDVNs"`
	Confirmations   []uint64           `yaml:"confirmations" json:"confirmations"`
	EnforcedOptions [][]EnforcedOption `yaml:"enforcedOptions" json:"enforcedOptions"`
	Executor        string             `yaml:"executor" json:"executor"`
}

// EnforcedOption is an executor option applied to every message of a type
type EnforcedOption struct {
	MsgType    int    `yaml:"msgType" json:"msgType"`
	OptionType string `yaml:"optionType" json:"optionType"`
	Gas        uint64 `yaml:"gas" json:"gas"`
	Value      uint64 `yaml:"value" json:"value"`
}

// UlnConfig is the verification config of one side of a connection
type UlnConfig struct {
	Confirmations        uint64   `json:"confirmations"`
	RequiredDVNs         []string `json:"requiredDVNs"`
	OptionalDVNs         []string `json:"optionalDVNs"`
	OptionalDVNThreshold int      `json:"optionalDVNThreshold"`
}

// Connection is one direction of a pathway with names resolved to addresses
// on the sending chain.
type Connection struct {
	From   ConfiguredEndpoint `json:"from"`
	To     ConfiguredEndpoint `json:"to"`
	Config ConnectionConfig   `json:"config"`
}

// ConnectionConfig is the per-direction worker setup
type ConnectionConfig struct {
	Executor        string           `json:"executor"`
	SendConfig      UlnConfig        `json:"sendConfig"`
	ReceiveConfig   UlnConfig        `json:"receiveConfig"`
	EnforcedOptions []EnforcedOption `json:"enforcedOptions"`
}

// ConnectionsDocument is the file consumed by the wiring tooling
type ConnectionsDocument struct {
	Contracts   []ConfiguredEndpoint `json:"contracts"`
	Connections []Connection         `json:"connections"`
}
