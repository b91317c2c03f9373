package ratelimit

import (
	"strings"
)

// unlimited marks operational endpoints that are never throttled.
var unlimited = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
}

// MatchRule returns the rule for a request, or nil when the default limit applies.
// Exact paths win over prefix rules.
func MatchRule(path string, method string, rules []Rule) *Rule {
	if unlimited[method+" "+path] {
		return &Rule{Path: path, Method: method}
	}

	for i := range rules {
		if rules[i].Path == path && rules[i].Method == method {
			return &rules[i]
		}
	}

	for i := range rules {
		rule := &rules[i]
		if rule.Method == method && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}

	return nil
}
