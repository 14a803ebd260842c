package tifscan

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	// Artifact comments. A leading run of asterisks after # selects the
	// severity; two reserved sub-cases carry extra meaning.
	TokenArtifactImportsStart TokenType = "ARTIFACT_IMPORTS_START"
	TokenArtifactImportGroup  TokenType = "ARTIFACT_IMPORT_GROUP"
	TokenArtifactStart        TokenType = "ARTIFACT_START"
	TokenArtifactSection      TokenType = "ARTIFACT_SECTION"
	TokenArtifactMember       TokenType = "ARTIFACT_MEMBER"

	// Documentation and ordinary comments.
	TokenDocstring   TokenType = "DOCSTRING"
	TokenLineComment TokenType = "LINE_COMMENT"

	// Domain idioms. Each spans a fixed multi-character shape that would
	// otherwise decompose into several generic tokens.
	TokenParametersRequired TokenType = "PARAMETERS_REQUIRED"
	TokenVerifyParameter    TokenType = "VERIFY_PARAMETER"
	TokenVerify             TokenType = "VERIFY"
	TokenServiceCall        TokenType = "SERVICE_CALL"
	TokenFactoryCall        TokenType = "FACTORY_CALL"
	TokenConstRef           TokenType = "CONST_REF"

	// Structural keywords of the dialect.
	TokenClass   TokenType = "CLASS"
	TokenDef     TokenType = "DEF"
	TokenInit    TokenType = "INIT"
	TokenExecute TokenType = "EXECUTE"
	TokenReturn  TokenType = "RETURN"
	TokenSelf    TokenType = "SELF"

	// Generic tokens.
	TokenPythonKeyword TokenType = "PYTHON_KEYWORD"
	TokenIdentifier    TokenType = "IDENTIFIER"
	TokenStringLit     TokenType = "STRING_LITERAL"
	TokenNumberLit     TokenType = "NUMBER_LITERAL"

	// Punctuation and fixed-width operators.
	TokenLParen TokenType = "LPAREN"
	TokenRParen TokenType = "RPAREN"
	TokenLBrack TokenType = "LBRACK"
	TokenRBrack TokenType = "RBRACK"
	TokenLBrace TokenType = "LBRACE"
	TokenRBrace TokenType = "RBRACE"
	TokenComma  TokenType = "COMMA"
	TokenColon  TokenType = "COLON"
	TokenArrow  TokenType = "ARROW"
	TokenDot    TokenType = "DOT"
	TokenEquals TokenType = "EQUALS"

	// Layout and defects.
	TokenNewline TokenType = "NEWLINE"
	TokenUnknown TokenType = "UNKNOWN"
)

// Position is a 1-based line/column location in the scanned unit.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Token captures one lexeme of the scanned unit. Start is inclusive, End
// exclusive; StartOffset/EndOffset are the byte span within the unit, so a
// caller can tile the input exactly even though whitespace between tokens
// is skipped rather than emitted.
type Token struct {
	Type        TokenType `json:"type"`
	Literal     string    `json:"literal"`
	Value       string    `json:"value,omitempty"`
	Start       Position  `json:"start"`
	End         Position  `json:"end"`
	StartOffset int       `json:"start_offset"`
	EndOffset   int       `json:"end_offset"`
}

// IsArtifact reports whether the token is an artifact-comment marker.
func (t Token) IsArtifact() bool {
	switch t.Type {
	case TokenArtifactImportsStart, TokenArtifactImportGroup,
		TokenArtifactStart, TokenArtifactSection, TokenArtifactMember:
		return true
	}
	return false
}

// IsDomainIdiom reports whether the token is a multi-character domain
// compound.
func (t Token) IsDomainIdiom() bool {
	switch t.Type {
	case TokenParametersRequired, TokenVerifyParameter, TokenVerify,
		TokenServiceCall, TokenFactoryCall, TokenConstRef:
		return true
	}
	return false
}

// IsKeyword reports whether the token is a structural or host-language
// keyword.
func (t Token) IsKeyword() bool {
	switch t.Type {
	case TokenClass, TokenDef, TokenInit, TokenExecute, TokenReturn,
		TokenSelf, TokenPythonKeyword:
		return true
	}
	return false
}

// pythonKeywords is the closed set of host-language reserved words that are
// not structural keywords of the dialect.
var pythonKeywords = map[string]struct{}{
	"and": {}, "as": {}, "assert": {}, "break": {}, "continue": {},
	"del": {}, "elif": {}, "else": {}, "except": {}, "False": {},
	"finally": {}, "for": {}, "from": {}, "global": {}, "if": {},
	"import": {}, "in": {}, "is": {}, "lambda": {}, "None": {},
	"nonlocal": {}, "not": {}, "or": {}, "pass": {}, "raise": {},
	"True": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

func lookupKeyword(ident string) TokenType {
	switch ident {
	case "class":
		return TokenClass
	case "def":
		return TokenDef
	case "__init__":
		return TokenInit
	case "execute":
		return TokenExecute
	case "return":
		return TokenReturn
	case "self":
		return TokenSelf
	}
	if _, ok := pythonKeywords[ident]; ok {
		return TokenPythonKeyword
	}
	return TokenIdentifier
}
