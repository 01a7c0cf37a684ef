package statblock

import (
	"log"
	"strconv"
	"strings"

	"github.com/open-cli-collective/statblock-cli/pkg/dice"
)

// damage is one damage type of a strike, possibly merged from several rolls.
type damage struct {
	Type     string
	Category string
	Formula  string          // opaque display text
	Expr     dice.Expression // nil when Formula is not plain dice
}

func (d damage) String() string {
	return space(d.display(), d.Category, d.Type)
}

// strikeDamage collects the damage rolls of a strike. Rolls sharing a damage
// type and category are merged so that "1d6" and "1d6" slashing become
// "2d6 slashing". Formulas that are not plain dice are kept verbatim.
func strikeDamage(item Item) []damage {
	var out []damage
	index := map[string]int{}

	for _, e := range item.Entries("system.damageRolls") {
		formula, ok := e.Value.String("damage")
		if !ok {
			continue
		}
		typ, _ := e.Value.String("damageType")
		category, _ := e.Value.String("category")
		formula = strings.ReplaceAll(formula, " ", "")

		expr, err := dice.ParseExpression(formula)
		if err != nil {
			log.Printf("WARN: %s: damage %s kept as text: %v", item.Name, e.Key, err)
			expr = nil
		}

		key := typ + "|" + category
		if i, seen := index[key]; seen {
			prev := &out[i]
			if prev.Expr != nil && expr != nil {
				prev.Expr = prev.Expr.Merge(expr)
			} else {
				prev.Formula = join("+", prev.display(), formula)
				prev.Expr = nil
			}
			continue
		}

		index[key] = len(out)
		out = append(out, damage{Type: typ, Category: category, Formula: formula, Expr: expr})
	}
	return out
}

func (d damage) display() string {
	if d.Expr != nil {
		return d.Expr.String()
	}
	return d.Formula
}

// criticalDamage doubles each damage expression and applies the deadly and
// fatal weapon traits. Damage that is not plain dice is omitted.
func criticalDamage(parts []damage, traits []string) []damage {
	var fatal, deadly int
	for _, t := range traits {
		switch {
		case strings.HasPrefix(t, "fatal-d"):
			fatal, _ = strconv.Atoi(strings.TrimPrefix(t, "fatal-d"))
		case strings.HasPrefix(t, "deadly-d"):
			deadly, _ = strconv.Atoi(strings.TrimPrefix(t, "deadly-d"))
		}
	}

	var out []damage
	for i, d := range parts {
		if d.Expr == nil {
			continue
		}
		expr := make(dice.Expression, len(d.Expr))
		copy(expr, d.Expr)
		if fatal > 1 {
			for j, t := range expr {
				if t.Sides > 1 {
					expr[j].Sides = fatal
				}
			}
		}
		expr = expr.Scale(2)
		// extra dice only apply to the weapon's main damage
		if i == 0 {
			if fatal > 1 {
				expr = expr.Append(dice.Term{Count: 1, Sides: fatal})
			}
			if deadly > 1 {
				expr = expr.Append(dice.Term{Count: 1, Sides: deadly})
			}
		}
		out = append(out, damage{Type: d.Type, Category: d.Category, Expr: expr})
	}
	return out
}

func damageText(parts []damage) string {
	texts := make([]string, len(parts))
	for i, d := range parts {
		texts[i] = d.String()
	}
	return join(" plus ", texts...)
}

// attackBonuses renders "+8 [+3/-2]" using the multiple attack penalty,
// which is smaller for agile weapons.
func attackBonuses(bonus int, traits []string) string {
	step := 5
	if contains(traits, "agile") {
		step = 4
	}
	return signed(bonus) + " [" + signed(bonus-step) + "/" + signed(bonus-2*step) + "]"
}

// isRanged reports whether a strike is a ranged attack.
func isRanged(item Item) bool {
	if wt, ok := item.String("system.weaponType.value"); ok {
		return wt == "ranged"
	}
	for _, t := range item.Strings("system.traits.value") {
		if strings.HasPrefix(t, "range") || strings.HasPrefix(t, "thrown") {
			return true
		}
	}
	return false
}
