// macro.go defines the inline macro kinds found in statblock rule text.
package md

// MacroKind identifies a recognised inline macro.
type MacroKind int

const (
	MacroCheck    MacroKind = iota // @Check[reflex|dc:21]
	MacroUUID                      // @UUID[Compendium.pf2e.conditionitems.Item.Confused]{Confused}
	MacroLocalize                  // @Localize[PF2E.NPC.Abilities.Glossary.Push]
	MacroDamage                    // @Damage[(1d10+2)[piercing]]
	MacroTemplate                  // @Template[cone|distance:50]
	MacroGmRoll                    // [[/gmr 1d4 #hours]]{1d4 hours}
	MacroAct                       // [[/act trip]]
	MacroBreak                     // [[/br 2d4 #hours]]{2d4 hours}
	MacroRoll                      // [[/r 1d20+17 #Counteract]]{+17}
)

var macroKindNames = map[MacroKind]string{
	MacroCheck:    "Check",
	MacroUUID:     "UUID",
	MacroLocalize: "Localize",
	MacroDamage:   "Damage",
	MacroTemplate: "Template",
	MacroGmRoll:   "gmr",
	MacroAct:      "act",
	MacroBreak:    "br",
	MacroRoll:     "r",
}

func (k MacroKind) String() string {
	if name, ok := macroKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MacroSyntax distinguishes the two inline forms.
type MacroSyntax int

const (
	SyntaxAt    MacroSyntax = iota // @Kind[args]{label}
	SyntaxSlash                    // [[/cmd rest]]{label}
)

// atMacros maps at-macro names to kinds. Names are case-sensitive.
// Adding a new macro = adding one entry here and a rule in normalize.go.
var atMacros = map[string]MacroKind{
	"Check":    MacroCheck,
	"UUID":     MacroUUID,
	"Localize": MacroLocalize,
	"Damage":   MacroDamage,
	"Template": MacroTemplate,
}

// slashMacros maps slash-macro commands to kinds.
var slashMacros = map[string]MacroKind{
	"gmr": MacroGmRoll,
	"act": MacroAct,
	"br":  MacroBreak,
	"r":   MacroRoll,
}

// LookupMacro returns the kind registered for name in the given syntax.
// Returns ok=false if the name is not recognised.
func LookupMacro(syntax MacroSyntax, name string) (MacroKind, bool) {
	var kind MacroKind
	var ok bool
	switch syntax {
	case SyntaxAt:
		kind, ok = atMacros[name]
	case SyntaxSlash:
		kind, ok = slashMacros[name]
	}
	return kind, ok
}

// MacroToken is one recognised macro occurrence.
type MacroToken struct {
	Kind     MacroKind
	Syntax   MacroSyntax
	Args     string // raw text between the brackets (rest for slash macros)
	Label    string // text between the braces
	HasLabel bool
	Start    int // byte offset of '@' or the first '['
	End      int // byte offset just past the token
}
