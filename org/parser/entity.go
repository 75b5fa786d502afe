package parser

type entityDef struct {
	latex string
	utf8  string
}

// entities is the table of named characters recognized after a backslash.
var entities = map[string]entityDef{
	// Latin
	"Agrave": {`\`+"`{A}", "À"}, "agrave": {`\`+"`{a}", "à"},
	"Aacute": {`\'{A}`, "Á"}, "aacute": {`\'{a}`, "á"},
	"Acirc": {`\^{A}`, "Â"}, "acirc": {`\^{a}`, "â"},
	"Atilde": {`\~{A}`, "Ã"}, "atilde": {`\~{a}`, "ã"},
	"Auml": {`\"{A}`, "Ä"}, "auml": {`\"{a}`, "ä"},
	"Aring": {`\AA{}`, "Å"}, "aring": {`\aa{}`, "å"},
	"AElig": {`\AE{}`, "Æ"}, "aelig": {`\ae{}`, "æ"},
	"Ccedil": {`\c{C}`, "Ç"}, "ccedil": {`\c{c}`, "ç"},
	"Egrave": {`\`+"`{E}", "È"}, "egrave": {`\`+"`{e}", "è"},
	"Eacute": {`\'{E}`, "É"}, "eacute": {`\'{e}`, "é"},
	"Ecirc": {`\^{E}`, "Ê"}, "ecirc": {`\^{e}`, "ê"},
	"Euml": {`\"{E}`, "Ë"}, "euml": {`\"{e}`, "ë"},
	"Iacute": {`\'{I}`, "Í"}, "iacute": {`\'{i}`, "í"},
	"Iuml": {`\"{I}`, "Ï"}, "iuml": {`\"{i}`, "ï"},
	"Ntilde": {`\~{N}`, "Ñ"}, "ntilde": {`\~{n}`, "ñ"},
	"Oacute": {`\'{O}`, "Ó"}, "oacute": {`\'{o}`, "ó"},
	"Ocirc": {`\^{O}`, "Ô"}, "ocirc": {`\^{o}`, "ô"},
	"Ouml": {`\"{O}`, "Ö"}, "ouml": {`\"{o}`, "ö"},
	"Oslash": {`\O`, "Ø"}, "oslash": {`\o{}`, "ø"},
	"OElig": {`\OE{}`, "Œ"}, "oelig": {`\oe{}`, "œ"},
	"Scaron": {`\v{S}`, "Š"}, "scaron": {`\v{s}`, "š"},
	"Uacute": {`\'{U}`, "Ú"}, "uacute": {`\'{u}`, "ú"},
	"Uuml": {`\"{U}`, "Ü"}, "uuml": {`\"{u}`, "ü"},
	"Yacute": {`\'{Y}`, "Ý"}, "yacute": {`\'{y}`, "ý"},
	"szlig": {`\ss{}`, "ß"},
	"thorn": {`\th{}`, "þ"}, "THORN": {`\TH{}`, "Þ"},
	"eth": {`\dh{}`, "ð"}, "ETH": {`\DH{}`, "Ð"},

	// Greek
	"Alpha": {`A`, "Α"}, "alpha": {`\alpha`, "α"},
	"Beta": {`B`, "Β"}, "beta": {`\beta`, "β"},
	"Gamma": {`\Gamma`, "Γ"}, "gamma": {`\gamma`, "γ"},
	"Delta": {`\Delta`, "Δ"}, "delta": {`\delta`, "δ"},
	"epsilon": {`\epsilon`, "ε"}, "varepsilon": {`\varepsilon`, "ε"},
	"zeta": {`\zeta`, "ζ"}, "eta": {`\eta`, "η"},
	"Theta": {`\Theta`, "Θ"}, "theta": {`\theta`, "θ"},
	"iota": {`\iota`, "ι"}, "kappa": {`\kappa`, "κ"},
	"Lambda": {`\Lambda`, "Λ"}, "lambda": {`\lambda`, "λ"},
	"mu": {`\mu`, "μ"}, "nu": {`\nu`, "ν"},
	"Xi": {`\Xi`, "Ξ"}, "xi": {`\xi`, "ξ"},
	"Pi": {`\Pi`, "Π"}, "pi": {`\pi`, "π"},
	"rho": {`\rho`, "ρ"},
	"Sigma": {`\Sigma`, "Σ"}, "sigma": {`\sigma`, "σ"},
	"tau": {`\tau`, "τ"},
	"Phi": {`\Phi`, "Φ"}, "phi": {`\phi`, "φ"},
	"chi": {`\chi`, "χ"},
	"Psi": {`\Psi`, "Ψ"}, "psi": {`\psi`, "ψ"},
	"Omega": {`\Omega`, "Ω"}, "omega": {`\omega`, "ω"},

	// Punctuation and symbols
	"nbsp": {`~`, " "},
	"ensp": {`\hspace*{.5em}`, " "},
	"emsp": {`\hspace*{1em}`, " "},
	"thinsp": {`\,`, " "},
	"shy": {`\-`, "­"},
	"ndash": {`--`, "–"}, "mdash": {`---`, "—"},
	"hellip": {`\dots{}`, "…"}, "dots": {`\dots{}`, "…"},
	"laquo": {`\guillemotleft{}`, "«"}, "raquo": {`\guillemotright{}`, "»"},
	"lsquo": {"`", "‘"}, "rsquo": {`'`, "’"},
	"ldquo": {"``", "“"}, "rdquo": {`''`, "”"},
	"iexcl": {`!`+"`", "¡"}, "iquest": {`?`+"`", "¿"},
	"bull": {`\textbullet{}`, "•"},
	"dagger": {`\dag{}`, "†"}, "Dagger": {`\ddag{}`, "‡"},
	"sect": {`\S`, "§"}, "para": {`\P{}`, "¶"},
	"copy": {`\textcopyright{}`, "©"}, "reg": {`\textregistered{}`, "®"},
	"trade": {`\texttrademark{}`, "™"},
	"deg": {`\textdegree{}`, "°"},
	"amp": {`\&`, "&"}, "lt": {`\textless{}`, "<"}, "gt": {`\textgreater{}`, ">"},
	"quot": {`\textquotedbl{}`, "\""}, "apos": {`\textquotesingle{}`, "'"},
	"vert": {`\vert{}`, "|"}, "backslash": {`\textbackslash{}`, "\\"},
	"under": {`\_`, "_"}, "dollar": {`\$`, "$"},

	// Currency
	"cent": {`\textcent{}`, "¢"}, "pound": {`\pounds{}`, "£"},
	"yen": {`\textyen{}`, "¥"}, "euro": {`\texteuro{}`, "€"},

	// Math
	"pm": {`\textpm{}`, "±"}, "plusmn": {`\textpm{}`, "±"},
	"times": {`\texttimes{}`, "×"}, "div": {`\textdiv{}`, "÷"},
	"minus": {`\minus`, "−"},
	"le": {`\le`, "≤"}, "leq": {`\le`, "≤"},
	"ge": {`\ge`, "≥"}, "geq": {`\ge`, "≥"},
	"ne": {`\ne`, "≠"}, "neq": {`\neq`, "≠"},
	"equiv": {`\equiv`, "≡"}, "asymp": {`\asymp`, "≈"}, "approx": {`\approx`, "≈"},
	"infin": {`\infty`, "∞"}, "infty": {`\infty`, "∞"},
	"sum": {`\sum`, "∑"}, "prod": {`\prod`, "∏"},
	"radic": {`\sqrt{\,}`, "√"}, "sqrt": {`\sqrt{\,}`, "√"},
	"partial": {`\partial`, "∂"}, "nabla": {`\nabla`, "∇"},
	"forall": {`\forall`, "∀"}, "exist": {`\exists`, "∃"}, "exists": {`\exists`, "∃"},
	"empty": {`\empty`, "∅"}, "emptyset": {`\emptyset`, "∅"},
	"isin": {`\in`, "∈"}, "in": {`\in`, "∈"}, "notin": {`\notin`, "∉"},
	"cap": {`\cap`, "∩"}, "cup": {`\cup`, "∪"},
	"sub": {`\subset`, "⊂"}, "subset": {`\subset`, "⊂"},
	"sup": {`\supset`, "⊃"}, "supset": {`\supset`, "⊃"},
	"and": {`\wedge`, "∧"}, "or": {`\vee`, "∨"}, "not": {`\textlnot{}`, "¬"},
	"there4": {`\therefore`, "∴"}, "therefore": {`\therefore`, "∴"},
	"sup1": {`\textonesuperior{}`, "¹"}, "sup2": {`\texttwosuperior{}`, "²"},
	"sup3": {`\textthreesuperior{}`, "³"},
	"frac12": {`\textonehalf{}`, "½"}, "frac14": {`\textonequarter{}`, "¼"},
	"frac34": {`\textthreequarters{}`, "¾"},
	"micro": {`\textmu{}`, "µ"}, "permil": {`\textperthousand{}`, "‰"},

	// Arrows
	"larr": {`\leftarrow`, "←"}, "leftarrow": {`\leftarrow`, "←"},
	"rarr": {`\rightarrow`, "→"}, "rightarrow": {`\rightarrow`, "→"}, "to": {`\to`, "→"},
	"uarr": {`\uparrow`, "↑"}, "darr": {`\downarrow`, "↓"},
	"harr": {`\leftrightarrow`, "↔"}, "leftrightarrow": {`\leftrightarrow`, "↔"},
	"lArr": {`\Leftarrow`, "⇐"}, "Leftarrow": {`\Leftarrow`, "⇐"},
	"rArr": {`\Rightarrow`, "⇒"}, "Rightarrow": {`\Rightarrow`, "⇒"},
	"hArr": {`\Leftrightarrow`, "⇔"}, "Leftrightarrow": {`\Leftrightarrow`, "⇔"},

	// Misc
	"star": {`\star`, "⋆"}, "checkmark": {`\checkmark`, "✓"},
	"smile": {`\smile`, "⌣"}, "frown": {`\frown`, "⌢"},
	"clubs": {`\clubsuit`, "♣"}, "hearts": {`\heartsuit`, "♥"},
	"spades": {`\spadesuit`, "♠"}, "diams": {`\diamondsuit`, "♦"},
}

// entity matches \NAME or \NAME{} for a known name. The name must not be
// followed by a letter.
func (p *parser) entity(r objRange, i int) *Node {
	src := p.src
	j := i + 1
	for j < r.end && isAlnum(src[j]) {
		j++
	}
	def, ok := entities[string(src[i+1:j])]
	if !ok {
		j = i + 1
		for j < r.end && isAlpha(src[j]) {
			j++
		}
		if def, ok = entities[string(src[i+1:j])]; !ok {
			return nil
		}
	}
	name := string(src[i+1 : j])
	props := &EntityProps{Name: name, Latex: def.latex, UTF8: def.utf8}
	if hasPrefixAt(src, j, r.end, "{}") {
		props.Brackets = true
		return atom(KindEntity, i, j+2, props)
	}
	if j < r.end && isAlpha(src[j]) {
		return nil
	}
	return atom(KindEntity, i, j, props)
}
