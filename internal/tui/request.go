package tui

import (
	"fmt"
	"strings"

	"nft-recon/internal/domain"
	"nft-recon/internal/service"
)

// Form field order.
const (
	fieldChain = iota
	fieldContract
	fieldToken
	fieldStart
	fieldEnd
	fieldCount
)

// BuildRequest turns raw prompt answers into a service request. A malformed
// time bound is not an error: it produces a warning and leaves that side of
// the window unbounded. Missing identifiers are returned as an error.
func BuildRequest(chain, contract, token, start, end string) (service.Request, []string, error) {
	req := service.Request{
		Chain:           strings.TrimSpace(chain),
		ContractAddress: strings.TrimSpace(contract),
		TokenID:         strings.TrimSpace(token),
	}

	var missing []string
	if req.Chain == "" {
		missing = append(missing, "chain")
	}
	if req.ContractAddress == "" {
		missing = append(missing, "contract address")
	}
	if req.TokenID == "" {
		missing = append(missing, "token ID")
	}
	if len(missing) > 0 {
		return service.Request{}, nil, fmt.Errorf("%s required", strings.Join(missing, ", "))
	}

	var warnings []string
	from, err := domain.ParseTimeBound(start)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("start time ignored: %v", err))
	}
	to, err := domain.ParseTimeBound(end)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("end time ignored: %v", err))
	}
	req.Window = domain.TimeWindow{From: from, To: to}
	return req, warnings, nil
}
