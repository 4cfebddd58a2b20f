package solana

import (
	"crypto/ed25519"
	"sync"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vectors from the Solana SDK pubkey tests. "SeedPubey" is spelled the way
// the SDK spells it.
func TestCreateProgramAddress(t *testing.T) {
	program := mustDecode(t, "BPFLoader1111111111111111111111111111111111")
	seedKey := mustDecode(t, "SeedPubey1111111111111111111111111111111111")

	for expected, seeds := range map[string][][]byte{
		"3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT": {{}, {1}},
		"7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7": {[]byte("☉")},
		"HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds": {[]byte("Talking"), []byte("Squirrels")},
		"GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K": {seedKey},
	} {
		addr, err := CreateProgramAddress(program, seeds...)
		require.NoError(t, err)
		assert.Equal(t, expected, base58.Encode(addr))
	}

	_, err := CreateProgramAddress(program, make([]byte, maxSeedLength))
	assert.NoError(t, err)

	_, err = CreateProgramAddress(program, make([]byte, maxSeedLength+1))
	assert.True(t, errors.Is(err, ErrMaxSeedLengthExceeded))
	_, err = CreateProgramAddress(program, []byte("short seed"), make([]byte, maxSeedLength+1))
	assert.True(t, errors.Is(err, ErrMaxSeedLengthExceeded))

	_, err = CreateProgramAddress(program, make([][]byte, maxSeeds+1)...)
	assert.True(t, errors.Is(err, ErrTooManySeeds))
}

func TestCreateProgramAddress_OnCurve(t *testing.T) {
	withEverythingOnCurve(t)

	_, err := CreateProgramAddress(randomKey(t), []byte("Lil'"), []byte("Bits"))
	assert.Equal(t, ErrInvalidPublicKey, err)
}

func TestFindProgramAddress(t *testing.T) {
	// Seeds "Lil'" and "Bits" against assorted program ids.
	for program, expected := range map[string]string{
		"4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM": "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd",
		"8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh": "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S",
		"CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3": "B2vBn2bmF9GuaGkebrm8oUqDC34pE6m4bagjNcVE6msv",
		"GcdayuLaLyrdmUu324nahyv33G5poQdLUEZ1nEytDeP": "2mN5Nfq9v1EwTV9FPTHPESZ3XiZce9wi5PQoULFuxvev",
		"LX3EUdRUBUa3TbsYXLEUdj9J3prXkWXvLYSWyYyc2Jj": "9CqF6oTZtW5zSeoLnZRoQmj3s2tXGPqifM1W8Z8LVE1z",
		"QRSsyMWN1yHT9ir42bgNZUNZ4PdEhcSWCrL2AryKpy5": "FwBDYafabYZLDC8FwaDCsLxWkKnaQxKuQv3afDAGiXJ8",
	} {
		addr, err := FindProgramAddress(mustDecode(t, program), []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)
		assert.Equal(t, expected, base58.Encode(addr), program)
	}

	for i := 0; i < 500; i++ {
		_, err := FindProgramAddress(randomKey(t), []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)
	}
}

func TestFindProgramAddress_Exhausted(t *testing.T) {
	withEverythingOnCurve(t)

	addr, bump, err := FindProgramAddressAndBump(randomKey(t), []byte("Lil'"), []byte("Bits"))
	assert.True(t, errors.Is(err, ErrDerivationExhausted))
	assert.Nil(t, addr)
	assert.Zero(t, bump)
}

func TestFindProgramAddress_BumpOrder(t *testing.T) {
	calls := 0
	onCurve = func(*[32]byte) bool {
		calls++
		return calls < 3
	}
	t.Cleanup(func() { onCurve = defaultOnCurve })

	_, bump, err := FindProgramAddressAndBump(randomKey(t), []byte("seed"))
	require.NoError(t, err)
	assert.EqualValues(t, 253, bump)
	assert.Equal(t, 3, calls)
}

func TestFindProgramAddressAndBump_Canonical(t *testing.T) {
	program := mustDecode(t, "BPFLoader1111111111111111111111111111111111")

	addr, bump, err := FindProgramAddressAndBump(program, []byte("Talking"))
	require.NoError(t, err)

	recreated, err := CreateProgramAddress(program, []byte("Talking"), []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, addr, recreated)

	// Every higher bump must land on the curve, otherwise it would have been picked.
	for b := int(bump) + 1; b <= 255; b++ {
		_, err := CreateProgramAddress(program, []byte("Talking"), []byte{byte(b)})
		assert.Equal(t, ErrInvalidPublicKey, err)
	}
}

var defaultOnCurve = onCurve

func withEverythingOnCurve(t *testing.T) {
	onCurve = func(*[32]byte) bool { return true }
	t.Cleanup(func() { onCurve = defaultOnCurve })
}

func mustDecode(t *testing.T, s string) []byte {
	b, err := base58.Decode(s)
	require.NoError(t, err)
	return b
}

func randomKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func TestDeriveAddress(t *testing.T) {
	programID, err := base58.Decode("4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM")
	require.NoError(t, err)

	actual, err := DeriveAddress(programID, LiteralSeed("Lil'"), LiteralSeed("Bits"))
	require.NoError(t, err)
	assert.Equal(t, "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd", base58.Encode(actual))

	_, err = DeriveAddress(programID[:31], LiteralSeed("Lil'"))
	assert.True(t, errors.Is(err, ErrInvalidPublicKey))

	_, err = DeriveAddress(programID, KeySeed(programID[:10]))
	assert.True(t, errors.Is(err, ErrInvalidPublicKey))

	_, err = DeriveAddress(programID, EncodedSeed(make([]byte, maxSeedLength+1)))
	assert.True(t, errors.Is(err, ErrMaxSeedLengthExceeded))

	tooMany := make([]Seed, maxSeeds+1)
	for i := range tooMany {
		tooMany[i] = Uint8Seed(uint8(i))
	}
	_, err = DeriveAddress(programID, tooMany...)
	assert.True(t, errors.Is(err, ErrTooManySeeds))
}

func TestDeriveAddress_Concurrent(t *testing.T) {
	programID, err := base58.Decode("8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			addr, err := DeriveAddress(programID, LiteralSeed("Lil'"), LiteralSeed("Bits"))
			if err == nil {
				results[i] = base58.Encode(addr)
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S", r)
	}
}

func TestFlattenSeeds(t *testing.T) {
	key := make([]byte, ed25519.PublicKeySize)
	key[0] = 7

	flattened, err := FlattenSeeds(
		LiteralSeed("EPOCH"),
		KeySeed(key),
		Uint64Seed(123),
		Uint32Seed(2),
		Uint8Seed(1),
	)
	require.NoError(t, err)
	require.Len(t, flattened, 5)

	assert.Equal(t, []byte("EPOCH"), flattened[0])
	assert.Equal(t, key, flattened[1])
	assert.Equal(t, []byte{123, 0, 0, 0, 0, 0, 0, 0}, flattened[2])
	assert.Equal(t, []byte{2, 0, 0, 0}, flattened[3])
	assert.Equal(t, []byte{1}, flattened[4])

	// Flattened seeds never alias the caller's key.
	flattened[1][0] = 9
	assert.EqualValues(t, 7, key[0])
}
