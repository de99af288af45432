package domain

import (
	"fmt"
	"strings"
)

// InvestorProfile is the investor's risk posture.
type InvestorProfile string

const (
	ProfileConservative InvestorProfile = "conservative"
	ProfileBalanced     InvestorProfile = "balanced"
	ProfileDynamic      InvestorProfile = "dynamic"
)

// Profiles returns the three profiles in display order.
func Profiles() []InvestorProfile {
	return []InvestorProfile{ProfileConservative, ProfileBalanced, ProfileDynamic}
}

// profileAliases also accepts the French labels of the HOLDi forms.
var profileAliases = map[string]InvestorProfile{
	"conservative":     ProfileConservative,
	"prudent":          ProfileConservative,
	"profil prudent":   ProfileConservative,
	"balanced":         ProfileBalanced,
	"equilibre":        ProfileBalanced,
	"équilibré":        ProfileBalanced,
	"profil equilibre": ProfileBalanced,
	"profil équilibré": ProfileBalanced,
	"dynamic":          ProfileDynamic,
	"dynamique":        ProfileDynamic,
	"profil dynamique": ProfileDynamic,
	"aggressive":       ProfileDynamic,
}

// ParseInvestorProfile resolves a user-supplied profile name.
func ParseInvestorProfile(s string) (InvestorProfile, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if p, ok := profileAliases[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown investor profile %q (valid: conservative, balanced, dynamic)", s)
}

// IsValid reports whether p is one of the three known profiles.
func (p InvestorProfile) IsValid() bool {
	switch p {
	case ProfileConservative, ProfileBalanced, ProfileDynamic:
		return true
	}
	return false
}

// DisplayName returns the capitalized profile name.
func (p InvestorProfile) DisplayName() string {
	switch p {
	case ProfileConservative:
		return "Conservative"
	case ProfileBalanced:
		return "Balanced"
	case ProfileDynamic:
		return "Dynamic"
	default:
		return string(p)
	}
}

// LegalStatus distinguishes a natural person from a legal entity. It is
// informational only and does not change the projection.
type LegalStatus string

const (
	StatusIndividual LegalStatus = "individual"
	StatusCompany    LegalStatus = "company"
)

var statusAliases = map[string]LegalStatus{
	"individual":        StatusIndividual,
	"person":            StatusIndividual,
	"personne physique": StatusIndividual,
	"company":           StatusCompany,
	"entity":            StatusCompany,
	"personne morale":   StatusCompany,
}

// ParseLegalStatus resolves a status name; empty input means an individual.
func ParseLegalStatus(s string) (LegalStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return StatusIndividual, nil
	}
	if st, ok := statusAliases[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown legal status %q (valid: individual, company)", s)
}
