package value

import (
	"math/big"

	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"
)

// bigIntT is a local alias for big.Int.
type bigIntT = big.Int

func bigOne() *big.Int           { return big.NewInt(1) }
func big1() *big.Int             { return big.NewInt(1) }
func bigFromInt64(v int64) *big.Int { return big.NewInt(v) }

func zeroDecimal() decimal.Decimal { return decimal.Zero }

// maxUnsigned returns 2^width-1 for the unsigned Kind k, used by
// BitwiseNot's ^x = (2^w-1) - x identity.
func maxUnsigned(k Kind) uint128.Uint128 {
	switch k {
	case KindU8:
		return uint128.From64(1<<8 - 1)
	case KindU16:
		return uint128.From64(1<<16 - 1)
	case KindU32:
		return uint128.From64(1<<32 - 1)
	case KindU64:
		return uint128.From64(1<<64 - 1)
	default:
		return uint128.Max
	}
}
