package policy

import (
	"errors"
	"math"
	"testing"
	"time"

	"lendvault-backend/internal/domain/account"
	"lendvault-backend/internal/domain/oracle"
)

func quote(price uint64) oracle.Quote {
	return oracle.Quote{Price: price, At: time.Now().UTC()}
}

func TestTierFor_Whitelist(t *testing.T) {
	p := New(DefaultConfig())

	want := map[uint8]uint8{20: 0, 25: 1, 33: 5, 50: 8}
	for ltv, apy := range want {
		tier, err := p.TierFor(ltv)
		if err != nil {
			t.Fatalf("TierFor(%d): %v", ltv, err)
		}
		if tier.APY != apy {
			t.Errorf("TierFor(%d).APY = %d, want %d", ltv, tier.APY, apy)
		}
	}

	for _, bad := range []uint8{0, 1, 19, 21, 34, 49, 51, 100, 255} {
		if _, err := p.TierFor(bad); !errors.Is(err, account.ErrInvalidLTV) {
			t.Errorf("TierFor(%d): want ErrInvalidLTV, got %v", bad, err)
		}
	}
}

func TestTierFor_CustomTiers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tiers = []Tier{{LTV: 40, APY: 3}}
	p := New(cfg)

	if _, err := p.TierFor(40); err != nil {
		t.Fatalf("custom tier 40 rejected: %v", err)
	}
	if _, err := p.TierFor(50); !errors.Is(err, account.ErrInvalidLTV) {
		t.Fatalf("default tier 50 should not pass a custom whitelist, got %v", err)
	}
}

func TestUsdValue_WorkedExample(t *testing.T) {
	p := New(DefaultConfig())

	// 1 SOL at $100.00 => 100 USDC in smallest units
	got, err := p.UsdValue(1_000_000_000, quote(10_000))
	if err != nil {
		t.Fatalf("UsdValue: %v", err)
	}
	if got != 100_000_000 {
		t.Fatalf("UsdValue = %d, want 100000000", got)
	}
}

func TestUsdValue_Flooring(t *testing.T) {
	p := New(DefaultConfig())

	// 1 lamport at $150.00: 1 * 15000 * 1e6 / 1e11 = 0.15 => floors to 0
	got, err := p.UsdValue(1, quote(15_000))
	if err != nil {
		t.Fatalf("UsdValue: %v", err)
	}
	if got != 0 {
		t.Fatalf("UsdValue = %d, want 0 (floored)", got)
	}
}

func TestUsdValue_Overflow(t *testing.T) {
	p := New(DefaultConfig())

	// the 256-bit intermediate survives, but the result cannot fit in u64
	if _, err := p.UsdValue(math.MaxUint64, quote(math.MaxUint64)); !errors.Is(err, account.ErrArithmeticOverflow) {
		t.Fatalf("want ErrArithmeticOverflow, got %v", err)
	}
}

func TestUsdValue_HugeIntermediateStillExact(t *testing.T) {
	p := New(DefaultConfig())

	// native * price overflows u64 on its own, but the scaled-down result
	// fits; 256-bit math must not lose it
	native := uint64(1 << 62)
	got, err := p.UsdValue(native, quote(10_000))
	if err != nil {
		t.Fatalf("UsdValue: %v", err)
	}
	want := uint64(float64(native) / 10) // price $100.00 => usd = native/10
	// allow off-by-one from float in the expectation itself
	if got < want-1 || got > want+1 {
		t.Fatalf("UsdValue = %d, want ≈%d", got, want)
	}
}

func TestMaxStable_ScenarioFromContract(t *testing.T) {
	p := New(DefaultConfig())

	// 1 SOL, $100.00, 50% LTV => max 50 USDC
	max, err := p.MaxStable(1_000_000_000, quote(10_000), 50)
	if err != nil {
		t.Fatalf("MaxStable: %v", err)
	}
	if max != 50_000_000 {
		t.Fatalf("MaxStable = %d, want 50000000", max)
	}
}

func TestMaxStable_FloorsTierMath(t *testing.T) {
	p := New(DefaultConfig())

	// at $100.00, usd_value(native) = native/10; pick native so it is 99,
	// then 33% => floor(99*33/100) = 32
	max, err := p.MaxStable(990, quote(10_000), 33)
	if err != nil {
		t.Fatalf("MaxStable: %v", err)
	}
	if max != 32 {
		t.Fatalf("MaxStable = %d, want 32", max)
	}
}
