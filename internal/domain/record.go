package domain

import "time"

// DeploymentRecord is what the address store keeps for one deployed contract
type DeploymentRecord struct {
	Contract        string    `json:"-"`
	Address         string    `json:"address"`
	TransactionHash string    `json:"transactionHash,omitempty"`
	BlockNumber     uint64    `json:"blockNumber,omitempty"`
	Args            []string  `json:"args,omitempty"`
	DeployedAt      time.Time `json:"deployedAt,omitzero"`
}
