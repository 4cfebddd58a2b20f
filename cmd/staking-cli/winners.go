package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana/staking"
)

// winnersFile is the JSON document consumed by the winners commands. Winner
// indices follow the order of the list.
type winnersFile struct {
	Winners []struct {
		Address        string `json:"address"`
		Tier           uint8  `json:"tier"`
		WinningTickets uint32 `json:"winningTickets"`
	} `json:"winners"`
}

func loadWinners(path string) ([]staking.WinnerInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read winners file %s", path)
	}
	return parseWinners(raw)
}

func parseWinners(raw []byte) ([]staking.WinnerInput, error) {
	var f winnersFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "invalid winners file")
	}
	if len(f.Winners) == 0 {
		return nil, errors.New("winners file lists no winners")
	}

	winners := make([]staking.WinnerInput, len(f.Winners))
	for i, w := range f.Winners {
		address, err := parsePublicKey(w.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "winner %d", i)
		}
		if w.Tier < staking.MinTier || w.Tier > staking.MaxTier {
			return nil, errors.Errorf("winner %d: invalid tier %d", i, w.Tier)
		}
		if w.WinningTickets == 0 {
			return nil, errors.Errorf("winner %d: no winning tickets", i)
		}

		winners[i] = staking.WinnerInput{
			Index:             uint32(i),
			Address:           address,
			Tier:              w.Tier,
			NumWinningTickets: w.WinningTickets,
		}
	}
	return winners, nil
}

// winnersMeta tallies the per tier totals the program checks published pages
// against.
func winnersMeta(winners []staking.WinnerInput) staking.CreateEpochWinnersMetaArgs {
	var meta staking.CreateEpochWinnersMetaArgs
	tiers := [...]*staking.TierWinnersMetaInput{&meta.Tier1, &meta.Tier2, &meta.Tier3}
	for _, w := range winners {
		tier := tiers[w.Tier-staking.MinTier]
		tier.TotalNumWinners++
		tier.TotalNumWinningTickets += w.NumWinningTickets
	}
	return meta
}

func winnersPages(winners []staking.WinnerInput) [][]staking.WinnerInput {
	var pages [][]staking.WinnerInput
	for start := 0; start < len(winners); start += staking.MaxWinnersPerPage {
		end := min(start+staking.MaxWinnersPerPage, len(winners))
		pages = append(pages, winners[start:end])
	}
	return pages
}
