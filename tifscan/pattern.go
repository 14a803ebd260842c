package tifscan

import (
	"regexp"
	"strings"
)

// Priority classes, lower value wins a length tie. Ties within a class are
// resolved by declaration order in the table.
const (
	prioArtifact    = 1
	prioDomainIdiom = 2
	prioDoc         = 4
	prioGeneric     = 6
	prioPunct       = 7
	prioLayout      = 8
)

// rule associates a token kind with a matcher and a priority class. match
// reports the number of bytes consumed at the start of its argument, or 0
// for no match. classify, when set, refines the kind from the lexeme
// (keyword resolution); valueOf, when set, extracts the decomposed payload.
type rule struct {
	kind     TokenType
	priority int
	match    func(s string) int
	classify func(lexeme string) TokenType
	valueOf  func(lexeme string) string
}

func regexRule(kind TokenType, priority int, pattern string) rule {
	re := regexp.MustCompile(pattern)
	return rule{
		kind:     kind,
		priority: priority,
		match: func(s string) int {
			loc := re.FindStringIndex(s)
			if loc == nil {
				return 0
			}
			return loc[1]
		},
	}
}

// withValue attaches a payload extractor that returns the named capture
// groups of pattern joined by ".".
func (r rule) withValue(pattern string, groups ...int) rule {
	re := regexp.MustCompile(pattern)
	r.valueOf = func(lexeme string) string {
		m := re.FindStringSubmatch(lexeme)
		if m == nil {
			return ""
		}
		parts := make([]string, 0, len(groups))
		for _, g := range groups {
			if g < len(m) && m[g] != "" {
				parts = append(parts, m[g])
			}
		}
		return strings.Join(parts, ".")
	}
	return r
}

func literalRule(kind TokenType, priority int, lit string) rule {
	return rule{
		kind:     kind,
		priority: priority,
		match: func(s string) int {
			if strings.HasPrefix(s, lit) {
				return len(lit)
			}
			return 0
		},
	}
}

// sectionName pulls the declared name out of a "<kind>: <name>" artifact
// marker, e.g. "# ** command: add_error" -> "add_error".
var sectionNameRe = regexp.MustCompile(`[A-Za-z_]\w*:\s+(\S+)`)

func sectionName(lexeme string) string {
	m := sectionNameRe.FindStringSubmatch(lexeme)
	if m == nil {
		return ""
	}
	return m[1]
}

// patternTable is the ordered, immutable catalog of recognition rules. It
// is built once at package init and shared by every scan; nothing mutates
// it afterwards, so concurrent scans need no synchronization.
var patternTable = buildPatternTable()

func buildPatternTable() []rule {
	importsStart := regexRule(TokenArtifactImportsStart, prioArtifact,
		`^#[ \t]*\*{3,}[ \t]+imports[ \t]*`)

	importGroup := regexRule(TokenArtifactImportGroup, prioArtifact,
		`^#[ \t]*\*{2}[ \t]+(core|app|infra)\b[^\n]*`)
	importGroup = importGroup.withValue(`\*{2}[ \t]+(core|app|infra)\b`, 1)

	artifactStart := regexRule(TokenArtifactStart, prioArtifact,
		`^#[ \t]*\*{3,}[ \t]+[^\n]*`)

	artifactSection := regexRule(TokenArtifactSection, prioArtifact,
		`^#[ \t]*\*{2}[ \t]+[^\n]*`)
	artifactSection.valueOf = sectionName

	artifactMember := regexRule(TokenArtifactMember, prioArtifact,
		`^#[ \t]*\*[ \t]+[^\n]*`)
	artifactMember.valueOf = sectionName

	serviceCall := regexRule(TokenServiceCall, prioDomainIdiom,
		`^self\.[A-Za-z_]\w*_service\.[A-Za-z_]\w*\(`)
	serviceCall = serviceCall.withValue(`^self\.([A-Za-z_]\w*_service)\.([A-Za-z_]\w*)\(`, 1, 2)

	factoryCall := regexRule(TokenFactoryCall, prioDomainIdiom,
		`^[A-Za-z_]\w*\.new\(`)
	factoryCall = factoryCall.withValue(`^([A-Za-z_]\w*)\.new\(`, 1)

	constRef := regexRule(TokenConstRef, prioDomainIdiom,
		`^a\.const\.[A-Z_][A-Z0-9_]*`)
	constRef = constRef.withValue(`^a\.const\.([A-Z_][A-Z0-9_]*)`, 1)

	identifier := regexRule(TokenIdentifier, prioGeneric, `^[A-Za-z_]\w*`)
	identifier.classify = lookupKeyword

	return []rule{
		// Artifact comments. The imports opener and the import-group
		// marker must precede the plain start/section rules so they win
		// the equal-length tie.
		importsStart,
		importGroup,
		artifactStart,
		artifactSection,
		artifactMember,

		// Docstrings and ordinary comments.
		regexRule(TokenDocstring, prioDoc,
			`^("""[\s\S]*?"""|'''[\s\S]*?''')`),
		regexRule(TokenLineComment, prioDoc, `^#[^*\n][^\n]*`),

		// Domain idiom compounds.
		regexRule(TokenParametersRequired, prioDomainIdiom,
			`^@[A-Za-z_]\w*\.parameters_required\(`),
		regexRule(TokenVerifyParameter, prioDomainIdiom,
			`^self\.verify_parameter\(`),
		regexRule(TokenVerify, prioDomainIdiom, `^self\.verify\(`),
		serviceCall,
		factoryCall,
		constRef,

		// Generic tokens. Structural and host-language keywords are
		// resolved from the identifier lexeme.
		regexRule(TokenStringLit, prioGeneric,
			`^("(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*')`),
		regexRule(TokenNumberLit, prioGeneric,
			`^[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`),
		identifier,

		// Punctuation.
		literalRule(TokenArrow, prioPunct, "->"),
		literalRule(TokenLParen, prioPunct, "("),
		literalRule(TokenRParen, prioPunct, ")"),
		literalRule(TokenLBrack, prioPunct, "["),
		literalRule(TokenRBrack, prioPunct, "]"),
		literalRule(TokenLBrace, prioPunct, "{"),
		literalRule(TokenRBrace, prioPunct, "}"),
		literalRule(TokenComma, prioPunct, ","),
		literalRule(TokenColon, prioPunct, ":"),
		literalRule(TokenDot, prioPunct, "."),
		literalRule(TokenEquals, prioPunct, "="),

		// Layout. A run of line breaks is one token.
		regexRule(TokenNewline, prioLayout, `^\n+`),
	}
}
