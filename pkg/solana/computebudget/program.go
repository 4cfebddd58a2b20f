package computebudget

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

// ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

// MaxComputeUnitLimit is the most compute units a transaction may request.
const MaxComputeUnitLimit = 1_400_000

const (
	commandRequestUnits uint8 = iota
	commandRequestHeapFrame
	commandSetComputeUnitLimit
	commandSetComputeUnitPrice
)

func SetComputeUnitLimit(computeUnitLimit uint32) solana.Instruction {
	return solana.NewInstruction(
		ProgramKey,
		binary.Concat(binary.Uint8(commandSetComputeUnitLimit), binary.Uint32(computeUnitLimit)),
	)
}

func SetComputeUnitPrice(computeUnitPrice uint64) solana.Instruction {
	return solana.NewInstruction(
		ProgramKey,
		binary.Concat(binary.Uint8(commandSetComputeUnitPrice), binary.Uint64(computeUnitPrice)),
	)
}

// GetComputeUnitLimit returns the limit requested by a transaction, if any.
func GetComputeUnitLimit(m solana.Message) (uint32, bool, error) {
	for _, i := range m.Instructions {
		if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey) {
			continue
		}
		if len(i.Data) == 0 || i.Data[0] != commandSetComputeUnitLimit {
			continue
		}

		limit, err := ParseSetComputeUnitLimitIxnData(i.Data)
		if err != nil {
			return 0, false, err
		}
		return limit, true, nil
	}
	return 0, false, nil
}

func ParseSetComputeUnitLimitIxnData(data []byte) (uint32, error) {
	if len(data) != 5 {
		return 0, errors.New("invalid length")
	}

	if data[0] != commandSetComputeUnitLimit {
		return 0, errors.New("invalid instruction")
	}

	var limit uint32
	offset := 1
	if err := binary.GetUint32(data, &limit, &offset); err != nil {
		return 0, err
	}
	return limit, nil
}

func ParseSetComputeUnitPriceIxnData(data []byte) (uint64, error) {
	if len(data) != 9 {
		return 0, errors.New("invalid length")
	}

	if data[0] != commandSetComputeUnitPrice {
		return 0, errors.New("invalid instruction")
	}

	var price uint64
	offset := 1
	if err := binary.GetUint64(data, &price, &offset); err != nil {
		return 0, err
	}
	return price, nil
}
