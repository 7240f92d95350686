package models

import (
	"fmt"
	"slices"

	"anchorledger/pkg/domain"
)

// ServiceType enumerates the capabilities an anchor can offer. The numeric
// values define a total order used for deterministic comparisons only; they
// carry no business meaning.
type ServiceType uint32

const (
	ServiceDeposits    ServiceType = 1
	ServiceWithdrawals ServiceType = 2
	ServiceQuotes      ServiceType = 3
	ServiceKYC         ServiceType = 4
)

// Valid reports whether t is a member of the closed enumeration.
func (t ServiceType) Valid() bool {
	return t >= ServiceDeposits && t <= ServiceKYC
}

func (t ServiceType) String() string {
	switch t {
	case ServiceDeposits:
		return "deposits"
	case ServiceWithdrawals:
		return "withdrawals"
	case ServiceQuotes:
		return "quotes"
	case ServiceKYC:
		return "kyc"
	default:
		return fmt.Sprintf("service(%d)", uint32(t))
	}
}

// ParseServiceType maps the wire name back to a ServiceType.
func ParseServiceType(s string) (ServiceType, error) {
	switch s {
	case "deposits":
		return ServiceDeposits, nil
	case "withdrawals":
		return ServiceWithdrawals, nil
	case "quotes":
		return ServiceQuotes, nil
	case "kyc":
		return ServiceKYC, nil
	default:
		return 0, fmt.Errorf("unknown service type %q", s)
	}
}

// Endpoint is an attestor's registered endpoint. Attestation issuance is
// rejected while IsActive is false.
type Endpoint struct {
	URL      string
	Attestor domain.Address
	IsActive bool
}

// AnchorServices is the set of capabilities an anchor is authorized for.
// Services is kept sorted and free of duplicates.
type AnchorServices struct {
	Anchor   domain.Address
	Services []ServiceType
}

// NewAnchorServices normalizes the service list: duplicates removed, sorted
// ascending.
func NewAnchorServices(anchor domain.Address, services []ServiceType) AnchorServices {
	normalized := slices.Clone(services)
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)
	return AnchorServices{Anchor: anchor, Services: normalized}
}

// Supports reports whether the anchor is authorized for the given service.
func (a AnchorServices) Supports(t ServiceType) bool {
	_, found := slices.BinarySearch(a.Services, t)
	return found
}
