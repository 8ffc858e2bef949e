package crawler

import (
	"time"

	"dutchie-extractor/internal/types"
)

// ageGateSelectors target the containers and buttons common 21+ consent
// interstitials are built from.
var ageGateSelectors = []string{
	"[class*='age-gate'] button",
	"[class*='agegate'] button",
	"[class*='age_gate'] button",
	"[id*='age-gate'] button",
	"[id*='agegate'] button",
	"[class*='age-verification'] button",
	"[class*='ageVerification'] button",
	".age-gate-button",
	"button[data-testid*='age']",
	"button[aria-label*='21']",
	"button[aria-label*='age']",
}

// ageGateTexts are confirmation phrases matched case-insensitively against
// button, link, and ARIA-button text.
var ageGateTexts = []string{
	"i'm 21",
	"im 21",
	"i am 21",
	"i am 21+",
	"over 21",
	"21+",
	"yes, i'm 21",
	"yes i'm 21",
	"i agree",
	"enter site",
	"enter the site",
	"confirm age",
	"verify age",
	"i am of legal age",
	"yes, i am",
	"yes i am",
	"yes",
	"enter",
}

// gateSettleDelay gives the real menu time to load after a gate dismissal.
const gateSettleDelay = 1500 * time.Millisecond

// Clicker is the slice of the page the age-gate bypass drives.
type Clicker interface {
	ClickFirstVisible(selector string) (bool, error)
	ClickAnyByText(text string) (bool, error)
	Sleep(d time.Duration)
}

// BypassAgeGate tries each dismissal strategy in order and returns after
// the first click that lands. Exhausting every strategy is a normal
// outcome, not an error: many menus have no gate, or had it defeated by
// the pre-seeded consent storage keys.
func BypassAgeGate(page Clicker, logger types.Logger) bool {
	for _, selector := range ageGateSelectors {
		clicked, err := page.ClickFirstVisible(selector)
		if err != nil || !clicked {
			continue
		}
		logger.Debugf("age gate dismissed via selector %q", selector)
		page.Sleep(gateSettleDelay)
		return true
	}

	for _, text := range ageGateTexts {
		clicked, err := page.ClickAnyByText(text)
		if err != nil || !clicked {
			continue
		}
		logger.Debugf("age gate dismissed via text %q", text)
		page.Sleep(gateSettleDelay)
		return true
	}

	return false
}
