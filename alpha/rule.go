// Package alpha implements the adaptive regulation loop: the controller
// aggregates swarm telemetry each tick and evaluates a compiled rule set
// that tunes coordination parameters and triggers corrective actions.
package alpha

import "github.com/expr-lang/expr/vm"

// ActionFunc mutates the simulation in response to a fired rule.
type ActionFunc func(env RuleEnv) error

// Rule is the atomic unit of regulation: a condition → action pair.
// Rules fire in priority order; Category + Exclusive keep contradictory
// adjustments (e.g. expanding and contracting the bond radius) from
// firing in the same pass.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for introspection)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
