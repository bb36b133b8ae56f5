package sqlparser

import (
	"fmt"
	"strings"
)

// Rules select the vendor specific quoting and comment conventions used
// while scanning. The zero value is the generic rule set, which tries
// to be conservative enough to work with any database.
type Rules struct {
	// BacktickAsQuote makes `...` a quoted span, like MySQL identifiers
	BacktickAsQuote bool `yaml:"backtickAsQuote"`

	// HashAsComment makes # start a comment running to end of line
	HashAsComment bool `yaml:"hashAsComment"`
}

func GenericRules() Rules {
	return Rules{}
}

func MySQLRules() Rules {
	return Rules{
		BacktickAsQuote: true,
		HashAsComment:   true,
	}
}

// RulesByName looks up a preset by the name used in configuration files.
// The empty name is the generic rule set.
func RulesByName(name string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "generic":
		return GenericRules(), nil
	case "mysql", "mariadb":
		return MySQLRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown dialect %q, expected generic or mysql", name)
	}
}
