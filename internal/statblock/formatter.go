package statblock

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/open-cli-collective/statblock-cli/internal/config"
	"github.com/open-cli-collective/statblock-cli/pkg/layout"
	"github.com/open-cli-collective/statblock-cli/pkg/md"
)

// Formatter writes a statblock as styled terminal text.
type Formatter struct {
	settings config.Settings
	w        io.Writer
	err      error
}

// NewFormatter creates a formatter for the given settings.
func NewFormatter(settings config.Settings, w io.Writer) *Formatter {
	return &Formatter{settings: settings, w: w}
}

// Format writes the whole statblock. The first error stops formatting;
// lines already written are kept.
func (f *Formatter) Format(doc *Document) error {
	f.err = nil

	sections := []func(*Document){
		f.header,
		f.senses,
		f.defenses,
		f.strikes,
		f.actions,
		f.spellcasting,
	}
	if f.settings.Details {
		sections = append(sections, f.notes)
	}

	for _, section := range sections {
		section(doc)
		if f.err != nil {
			return f.err
		}
	}
	return nil
}

func (f *Formatter) header(doc *Document) {
	name, _ := doc.String("name")
	f.title(name)

	kind := "Creature"
	if t, ok := doc.String("type"); ok && t == "hazard" {
		kind = "Hazard"
	}
	if level, ok := doc.FirstInt("system.details.level.value", "system.level.value"); ok {
		kind = space(kind, strconv.Itoa(level))
	}
	f.hr()
	f.para(md.Styled(md.Bold, kind))

	var traits []string
	if rarity, ok := doc.String("system.traits.rarity"); ok && rarity != "common" {
		traits = append(traits, rarity)
	}
	if size, ok := doc.String("system.traits.size.value"); ok {
		traits = append(traits, sizeName(size))
	}
	traits = append(traits, doc.Strings("system.traits.value")...)
	for i, t := range traits {
		traits[i] = strings.ToUpper(t)
	}
	f.para(strings.Join(traits, " "))
}

func (f *Formatter) senses(doc *Document) {
	if mod, ok := doc.FirstInt("system.perception.mod", "system.attributes.perception.value"); ok {
		f.item("Perception", join("; ", signed(mod), senseList(doc)))
	}

	langs := doc.Strings("system.details.languages.value")
	if len(langs) == 0 {
		langs = doc.Strings("system.traits.languages.value")
	}
	langDetails, _ := doc.First("system.details.languages.details", "system.traits.languages.custom")
	f.item("Languages", join("; ", com(titled(langs)...), langDetails))

	f.item("Skills", com(skillList(doc)...))

	var abilities []string
	for _, a := range []string{"str", "dex", "con", "int", "wis", "cha"} {
		if mod, ok := doc.Int("system.abilities." + a + ".mod"); ok {
			abilities = append(abilities, titleCase(a)+" "+signed(mod))
		}
	}
	f.para(com(abilities...))

	var gear []string
	for _, it := range doc.Items("weapon", "armor", "equipment", "consumable", "treasure", "backpack") {
		gear = append(gear, strings.ToLower(it.Name))
	}
	f.item("Items", com(gear...))
}

func (f *Formatter) defenses(doc *Document) {
	f.hr()

	var saves []string
	for _, s := range []struct{ key, label string }{
		{"fortitude", "Fort"}, {"reflex", "Ref"}, {"will", "Will"},
	} {
		if v, ok := doc.Int("system.saves." + s.key + ".value"); ok {
			detail, _ := doc.String("system.saves." + s.key + ".saveDetail")
			saves = append(saves, space(s.label, signed(v), parens(detail)))
		}
	}
	allSaves, _ := doc.String("system.attributes.allSaves.value")

	if ac, ok := doc.Int("system.attributes.ac.value"); ok {
		acDetail, _ := doc.String("system.attributes.ac.details")
		f.item("AC", join("; ", space(strconv.Itoa(ac), acDetail), com(saves...), allSaves))
	} else {
		f.para(join("; ", com(saves...), allSaves))
	}

	if hp, ok := doc.FirstInt("system.attributes.hp.max", "system.attributes.hp.value"); ok {
		hpDetail, _ := doc.String("system.attributes.hp.details")
		f.item("HP", join("; ",
			com(strconv.Itoa(hp), hpDetail),
			prefix(md.Styled(md.Bold, "Immunities"), com(iwr(doc, "system.attributes.immunities")...)),
			prefix(md.Styled(md.Bold, "Weaknesses"), com(iwr(doc, "system.attributes.weaknesses")...)),
			prefix(md.Styled(md.Bold, "Resistances"), com(iwr(doc, "system.attributes.resistances")...)),
		))
	}

	var speeds []string
	if v, ok := doc.Int("system.attributes.speed.value"); ok {
		speeds = append(speeds, strconv.Itoa(v)+" feet")
	}
	for _, s := range doc.Array("system.attributes.speed.otherSpeeds") {
		typ, _ := s.String("type")
		if v, ok := s.Int("value"); ok {
			speeds = append(speeds, space(typ, strconv.Itoa(v)+" feet"))
		}
	}
	speedDetail, _ := doc.String("system.attributes.speed.details")
	f.item("Speed", join("; ", com(speeds...), speedDetail))
}

func (f *Formatter) strikes(doc *Document) {
	items := doc.Items("melee")
	if len(items) == 0 {
		return
	}
	f.hr()

	for _, it := range items {
		label := "Melee"
		if isRanged(it) {
			label = "Ranged"
		}
		traits := it.Strings("system.traits.value")
		parts := strikeDamage(it)

		text := it.Name
		if bonus, ok := it.Int("system.bonus.value"); ok {
			text = space(text, attackBonuses(bonus, traits))
		}
		text = space(text, parens(com(titled(traits)...)))
		if dmg := damageText(parts); dmg != "" {
			text += ", " + md.Styled(md.Bold, "Damage") + " " + dmg
		}
		if effects := it.Strings("system.attackEffects.value"); len(effects) > 0 {
			text = space(text, "plus "+strings.Join(titled(effects), " and "))
		}
		if f.settings.Details {
			if crit := damageText(criticalDamage(parts, traits)); crit != "" {
				text += "; " + md.Styled(md.Bold, "Critical") + " " + crit
			}
		}

		f.item(label+" [1]", text)
	}
}

func (f *Formatter) actions(doc *Document) {
	items := doc.Items("action")
	if len(items) == 0 {
		return
	}
	f.hr()

	for _, it := range items {
		actionType, _ := it.String("system.actionType.value")
		count, _ := it.Int("system.actions.value")
		label := space(it.Name, actionGlyph(actionType, count))

		traits := parens(com(titled(it.Strings("system.traits.value"))...))
		desc, _ := it.String("system.description.value")
		f.entry(label, traits, fmt.Sprintf("items[%s].system.description.value", it.Name), desc)
	}
}

func (f *Formatter) spellcasting(doc *Document) {
	entries := doc.Items("spellcastingEntry")
	if len(entries) == 0 {
		return
	}
	spells := doc.Items("spell")
	f.hr()

	for _, entry := range entries {
		var stats []string
		if dc, ok := entry.FirstInt("system.spelldc.dc"); ok {
			stats = append(stats, "DC "+strconv.Itoa(dc))
		}
		if atk, ok := entry.Int("system.spelldc.value"); ok {
			stats = append(stats, "attack "+signed(atk))
		}

		byRank := map[int][]string{}
		for _, sp := range spells {
			if loc, _ := sp.String("system.location.value"); loc == "" || loc != entry.ID {
				continue
			}
			rank := 0
			if !contains(sp.Strings("system.traits.value"), "cantrip") {
				rank, _ = sp.FirstInt("system.location.heightenedLevel", "system.level.value")
			}
			byRank[rank] = append(byRank[rank], strings.ToLower(sp.Name))
		}

		ranks := make([]int, 0, len(byRank))
		for r := range byRank {
			ranks = append(ranks, r)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

		groups := []string{com(stats...)}
		for _, r := range ranks {
			label := ordinal(r)
			if r == 0 {
				label = "Cantrips"
			}
			groups = append(groups, md.Styled(md.Bold, label)+" "+com(byRank[r]...))
		}
		f.item(entry.Name, join("; ", groups...))
	}
}

func (f *Formatter) notes(doc *Document) {
	f.headingAndHTML(doc, []heading{
		{"Description", "system.details.publicNotes"},
		{"Private Notes", "system.details.privateNotes"},
		{"Blurb", "system.details.blurb"},
	})
}

type heading struct {
	title string
	path  string
}

// headingAndHTML prints each present rich-text field under a rule and a
// heading. Absent or empty fields print nothing.
func (f *Formatter) headingAndHTML(doc *Document, headings []heading) {
	for _, h := range headings {
		html, ok := doc.String(h.path)
		if !ok {
			continue
		}
		text, ok := f.renderHTML(h.path, html, f.settings.Width)
		if !ok {
			continue
		}
		f.hr()
		f.para(md.Styled(md.Bold+md.Underline, h.title))
		f.println(text)
	}
}

// renderHTML converts a rich-text field to styled text of at most width
// columns.
func (f *Formatter) renderHTML(path, html string, width int) (string, bool) {
	if f.err != nil {
		return "", false
	}
	markdown, ok, err := md.FromHTML(html, md.ConvertOptions{EmphasizeMacros: true})
	if err != nil {
		f.err = fmt.Errorf("field %s: %w", path, err)
		return "", false
	}
	if !ok {
		return "", false
	}
	text, err := md.Terminal(markdown, width)
	if err != nil {
		f.err = fmt.Errorf("field %s: %w", path, err)
		return "", false
	}
	return text, text != ""
}

// entry prints a bold label followed by an inline prefix and a rich-text
// body, hanging under the label.
func (f *Formatter) entry(label, inline, path, html string) {
	marker := f.marker(label)
	inner := f.settings.Width - ansi.StringWidth(marker)

	body, _ := f.renderHTML(path, html, inner)
	if f.err != nil {
		return
	}
	content := inline
	if body != "" {
		if content != "" {
			content = layout.Wordwrap(content, inner) + "\n" + body
		} else {
			content = body
		}
	}
	if content == "" {
		f.println(strings.TrimRight(marker, " "))
		return
	}
	f.lines(layout.RenderItem(marker, content, f.settings.Width))
}

// item prints "label text" with text hanging under the label.
func (f *Formatter) item(label, text string) {
	if text == "" {
		return
	}
	f.lines(layout.RenderItem(f.marker(label), text, f.settings.Width))
}

// marker returns the bold hanging label. Labels wider than half the line
// are printed on their own line and the text hangs under a short indent.
func (f *Formatter) marker(label string) string {
	marker := md.Styled(md.Bold, label) + " "
	if ansi.StringWidth(marker) > f.settings.Width/2 {
		f.para(md.Styled(md.Bold, label))
		return "  "
	}
	return marker
}

func (f *Formatter) lines(lines []string, err error) {
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return
	}
	for _, l := range lines {
		f.println(l)
	}
}

// para prints text word-wrapped to the width.
func (f *Formatter) para(text string) {
	if text == "" {
		return
	}
	f.println(layout.Wordwrap(text, f.settings.Width))
}

func (f *Formatter) title(text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(layout.Wordwrap(text, f.settings.Width), "\n") {
		f.println(md.Styled(md.Bold, layout.Center(strings.TrimSpace(line), f.settings.Width)))
	}
}

func (f *Formatter) hr() {
	f.println(layout.Rule("─", f.settings.Width))
}

func (f *Formatter) println(text string) {
	if f.err != nil || text == "" {
		return
	}
	if _, err := io.WriteString(f.w, text+"\n"); err != nil {
		f.err = fmt.Errorf("failed to write output: %w", err)
	}
}

// senseList renders the perception senses in either export layout.
func senseList(doc *Document) string {
	var senses []string
	for _, s := range doc.Array("system.perception.senses") {
		typ, _ := s.String("type")
		acuity, _ := s.String("acuity")
		rng, hasRange := s.Int("range")
		sense := titleCase(typ)
		if acuity != "" && acuity != "precise" {
			sense = space(sense, parens(acuity))
		}
		if hasRange {
			sense = space(sense, strconv.Itoa(rng)+" feet")
		}
		senses = append(senses, strings.ToLower(sense))
	}
	if len(senses) == 0 {
		if s, ok := doc.String("system.traits.senses.value"); ok {
			senses = append(senses, s)
		}
	}
	if details, ok := doc.String("system.perception.details"); ok {
		senses = append(senses, details)
	}
	return com(senses...)
}

// skillList renders skills from the skills object or from lore items.
func skillList(doc *Document) []string {
	var skills []string
	for _, e := range doc.Entries("system.skills") {
		if v, ok := e.Value.FirstInt("base", "value"); ok {
			skills = append(skills, titleCase(e.Key)+" "+signed(v))
		}
	}
	for _, it := range doc.Items("lore") {
		if v, ok := it.Int("system.mod.value"); ok {
			skills = append(skills, it.Name+" "+signed(v))
		}
	}
	sort.Strings(skills)
	return skills
}

// iwr renders immunities, weaknesses or resistances.
func iwr(doc *Document, path string) []string {
	var out []string
	for _, n := range doc.Array(path) {
		typ, ok := n.String("type")
		if !ok {
			continue
		}
		entry := strings.ReplaceAll(typ, "-", " ")
		if v, ok := n.Int("value"); ok {
			entry = space(entry, strconv.Itoa(v))
		}
		if exceptions := n.Strings("exceptions"); len(exceptions) > 0 {
			entry = space(entry, parens("except "+strings.Join(exceptions, " or ")))
		}
		out = append(out, entry)
	}
	return out
}

// actionGlyph renders the action cost in characters every code page has.
func actionGlyph(actionType string, count int) string {
	switch actionType {
	case "reaction":
		return "[R]"
	case "free":
		return "[F]"
	case "action":
		if count < 1 {
			count = 1
		}
		return "[" + strconv.Itoa(count) + "]"
	}
	return ""
}

func sizeName(size string) string {
	switch size {
	case "tiny":
		return "tiny"
	case "sm":
		return "small"
	case "med":
		return "medium"
	case "lg":
		return "large"
	case "huge":
		return "huge"
	case "grg":
		return "gargantuan"
	}
	return size
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}

func parens(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func titled(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ReplaceAll(s, "-", " ")
	}
	return out
}
