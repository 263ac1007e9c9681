// campaign-lint validates campaign config files before they are uploaded:
// structural checks, and a dry construction of every rule's operator so a
// typo in an operator name or comparator fails here instead of at request
// time.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
	"github.com/ignite/eligibility-signpost/internal/operators"
	"github.com/ignite/eligibility-signpost/internal/storage"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: campaign-lint <config.json> [...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	registry := operators.NewRegistry()
	failed := false
	for _, path := range flag.Args() {
		if err := lint(registry, path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("OK   %s\n", path)
	}
	if failed {
		os.Exit(1)
	}
}

func lint(registry *operators.Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := storage.ParseCampaignConfig(data, path)
	if err != nil {
		return err
	}

	today := time.Now()
	for i := range cfg.Iterations {
		it := &cfg.Iterations[i]
		for j := range it.IterationRules {
			rule := &it.IterationRules[j]
			if _, err := registry.Predicate(rule.Operator, rule.Comparator, today); err != nil {
				return fmt.Errorf("iteration %s rule %q: %w", it.ID, rule.Name, err)
			}
			if rule.CohortLabel != nil && *rule.CohortLabel != "" && !hasCohort(it, *rule.CohortLabel) {
				return domain.NewConfigurationError(
					"iteration %s rule %q scopes to unknown cohort %q", it.ID, rule.Name, *rule.CohortLabel)
			}
			if err := checkRouting(it, fmt.Sprintf("rule %q", rule.Name), rule.CommsRouting); err != nil {
				return err
			}
		}
		for _, routing := range []struct {
			name  string
			codes string
		}{
			{"DefaultCommsRouting", it.DefaultCommsRouting},
			{"DefaultNotEligibleRouting", it.DefaultNotEligibleRouting},
			{"DefaultNotActionableRouting", it.DefaultNotActionableRouting},
		} {
			if err := checkRouting(it, routing.name, routing.codes); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkRouting flags routing codes the iteration's ActionsMapper cannot
// resolve. At request time unmapped codes are dropped silently, so the lint
// is the only place a stale code gets reported.
func checkRouting(it *domain.Iteration, where, codes string) error {
	for _, code := range strings.Split(codes, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if it.ActionsMapper.Resolve(code) == nil {
			return domain.NewConfigurationError(
				"iteration %s %s: comms code %q not in ActionsMapper", it.ID, where, code)
		}
	}
	return nil
}

func hasCohort(it *domain.Iteration, label string) bool {
	for i := range it.IterationCohorts {
		if it.IterationCohorts[i].CohortLabel == label {
			return true
		}
	}
	return false
}
