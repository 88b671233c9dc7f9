// Package policy holds the loan origination rules: the LTV tier whitelist
// and the fixed-point SOL→USD conversion. It is pure — no mutable state —
// so the price math and tier table are testable without touching the
// ledger, and new tiers or liquidation thresholds can land here without
// changing the ledger's transition logic.
package policy

import (
	"github.com/holiman/uint256"

	"lendvault-backend/internal/domain/account"
	"lendvault-backend/internal/domain/oracle"
)

// Tier pairs an allowed LTV percentage with the APY recorded on loans taken
// at that tier. The APY is bookkeeping only; no interest accrues.
type Tier struct {
	LTV uint8
	APY uint8
}

// Config carries the tier whitelist and decimal scales. Threaded in
// explicitly rather than living as package globals so tests can substitute
// arbitrary tiers and prices.
type Config struct {
	Tiers []Tier
	// decimal scale of the native asset's smallest unit (lamports: 9)
	NativeDecimals uint8
	// decimal scale of the oracle price (USD cents: 2)
	PriceDecimals uint8
	// decimal scale of the stablecoin's smallest unit (USDC: 6)
	StableDecimals uint8
}

// DefaultConfig matches the deployed contract: tiers 20/25/33/50 with APYs
// 0/1/5/8, lamport-denominated SOL, cent-denominated prices, 6-decimal USDC.
func DefaultConfig() Config {
	return Config{
		Tiers: []Tier{
			{LTV: 20, APY: 0},
			{LTV: 25, APY: 1},
			{LTV: 33, APY: 5},
			{LTV: 50, APY: 8},
		},
		NativeDecimals: 9,
		PriceDecimals:  2,
		StableDecimals: 6,
	}
}

type Policy struct{ cfg Config }

func New(cfg Config) *Policy { return &Policy{cfg: cfg} }

// TierFor returns the tier for an LTV percentage, or ErrInvalidLTV when the
// value is not whitelisted.
func (p *Policy) TierFor(ltv uint8) (Tier, error) {
	for _, t := range p.cfg.Tiers {
		if t.LTV == ltv {
			return t, nil
		}
	}
	return Tier{}, account.ErrInvalidLTV
}

// UsdValue converts a native amount to stablecoin smallest units at the
// quoted price:
//
//	usd = native * price * 10^stable / (10^native * 10^price)
//
// The intermediate product can exceed 64 bits for legitimate inputs, so it
// is computed in 256-bit space and floored back into uint64.
// ErrArithmeticOverflow is returned when the result itself does not fit.
func (p *Policy) UsdValue(native uint64, q oracle.Quote) (uint64, error) {
	v := uint256.NewInt(native)
	v.Mul(v, uint256.NewInt(q.Price))
	v.Mul(v, pow10(p.cfg.StableDecimals))

	div := new(uint256.Int).Mul(pow10(p.cfg.NativeDecimals), pow10(p.cfg.PriceDecimals))
	v.Div(v, div)

	if !v.IsUint64() {
		return 0, account.ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}

// MaxStable returns floor(usd_value(native) * ltv / 100), the largest loan
// the policy allows against the deposited collateral at the given tier.
func (p *Policy) MaxStable(native uint64, q oracle.Quote, ltv uint8) (uint64, error) {
	usd, err := p.UsdValue(native, q)
	if err != nil {
		return 0, err
	}
	v := uint256.NewInt(usd)
	v.Mul(v, uint256.NewInt(uint64(ltv)))
	v.Div(v, uint256.NewInt(100))
	if !v.IsUint64() {
		return 0, account.ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}

func pow10(n uint8) *uint256.Int {
	v := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := uint8(0); i < n; i++ {
		v.Mul(v, ten)
	}
	return v
}
