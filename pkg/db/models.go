package db

import "time"

// LedgerRecord is one append-only staking transaction. Amount is the raw
// fixed-point integer (18 implied decimals) kept as a string; it is summed
// with arbitrary-precision arithmetic and only converted to token units at
// the presentation boundary.
type LedgerRecord struct {
	Staker    string    `ch:"staker" json:"staker"`
	Prover    string    `ch:"prover" json:"prover"`
	Amount    string    `ch:"amount" json:"amount"`
	BlockTime time.Time `ch:"block_time" json:"blockTime"`
	TxHash    string    `ch:"tx_hash" json:"txHash"`
}

// ProverMetadata is the optional descriptive record for a prover address.
// Absence of metadata degrades to address-only display, never a failure.
type ProverMetadata struct {
	Address     string    `ch:"address" json:"address"`
	Name        string    `ch:"name" json:"name"`
	LogoURL     string    `ch:"logo_url" json:"logoUrl"`
	APR         string    `ch:"apr" json:"apr"`
	Gas         string    `ch:"gas" json:"gas"`
	SuccessRate string    `ch:"success_rate" json:"successRate"`
	UpdatedAt   time.Time `ch:"updated_at" json:"-"`
}
