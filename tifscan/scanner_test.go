package tifscan

import (
	"reflect"
	"strings"
	"testing"
)

func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func firstToken(t *testing.T, text string) Token {
	t.Helper()
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		t.Fatalf("no tokens produced for %q", text)
	}
	return tokens[0]
}

func TestArtifactCommentSeverities(t *testing.T) {
	cases := []struct {
		input string
		want  TokenType
	}{
		{"# *** imports", TokenArtifactImportsStart},
		{"# *** commands", TokenArtifactStart},
		{"# **** events", TokenArtifactStart},
		{"# ** core", TokenArtifactImportGroup},
		{"# ** app", TokenArtifactImportGroup},
		{"# ** infra", TokenArtifactImportGroup},
		{"# ** command: add_error", TokenArtifactSection},
		{"# * method: execute", TokenArtifactMember},
		{"# just a note", TokenLineComment},
	}

	for _, tc := range cases {
		tok := firstToken(t, tc.input)
		if tok.Type != tc.want {
			t.Errorf("Tokenize(%q): got %s, want %s", tc.input, tok.Type, tc.want)
		}
		if tok.Literal != tc.input {
			t.Errorf("Tokenize(%q): lexeme %q should span the whole line", tc.input, tok.Literal)
		}
	}
}

func TestArtifactMarkerValues(t *testing.T) {
	if got := firstToken(t, "# ** core").Value; got != "core" {
		t.Fatalf("import group value: got %q, want %q", got, "core")
	}
	if got := firstToken(t, "# ** command: add_error").Value; got != "add_error" {
		t.Fatalf("section value: got %q, want %q", got, "add_error")
	}
	if got := firstToken(t, "# * method: execute").Value; got != "execute" {
		t.Fatalf("member value: got %q, want %q", got, "execute")
	}
}

func TestDomainIdiomCompounds(t *testing.T) {
	cases := []struct {
		input string
		want  TokenType
		value string
	}{
		{"self.verify(", TokenVerify, ""},
		{"self.verify_parameter(", TokenVerifyParameter, ""},
		{"self.error_service.save(", TokenServiceCall, "error_service.save"},
		{"Aggregate.new(", TokenFactoryCall, "Aggregate"},
		{"a.const.ERROR_ALREADY_EXISTS_ID", TokenConstRef, "ERROR_ALREADY_EXISTS_ID"},
		{"@DomainEvent.parameters_required(", TokenParametersRequired, ""},
	}

	for _, tc := range cases {
		tokens := Tokenize(tc.input)
		if len(tokens) != 1 {
			t.Errorf("Tokenize(%q): got %d tokens %v, want one compound token",
				tc.input, len(tokens), kinds(tokens))
			continue
		}
		tok := tokens[0]
		if tok.Type != tc.want {
			t.Errorf("Tokenize(%q): got %s, want %s", tc.input, tok.Type, tc.want)
		}
		if tok.Literal != tc.input {
			t.Errorf("Tokenize(%q): compound should span the whole input, got %q", tc.input, tok.Literal)
		}
		if tok.Value != tc.value {
			t.Errorf("Tokenize(%q): value %q, want %q", tc.input, tok.Value, tc.value)
		}
	}
}

func TestServiceCallRequiresServiceSuffix(t *testing.T) {
	got := kinds(Tokenize("self.errorservice.save("))
	want := []TokenType{TokenSelf, TokenDot, TokenIdentifier, TokenDot, TokenIdentifier, TokenLParen}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFactoryArgumentsStayGeneric(t *testing.T) {
	tokens := Tokenize("Aggregate.new(ErrorAggregate")
	got := kinds(tokens)
	want := []TokenType{TokenFactoryCall, TokenIdentifier}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tokens[1].Literal != "ErrorAggregate" {
		t.Fatalf("argument identifier lexeme: got %q", tokens[1].Literal)
	}
}

func TestConstRefBeatsDottedIdentifiers(t *testing.T) {
	tokens := Tokenize("a.const.ERROR_ALREADY_EXISTS_ID")
	if len(tokens) != 1 || tokens[0].Type != TokenConstRef {
		t.Fatalf("got %v, want one CONST_REF token", kinds(tokens))
	}

	// A lower-case tail is not a constant reference and decomposes.
	got := kinds(Tokenize("a.const.foo"))
	want := []TokenType{TokenIdentifier, TokenDot, TokenIdentifier, TokenDot, TokenIdentifier}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStructuralKeywords(t *testing.T) {
	cases := []struct {
		input string
		want  TokenType
	}{
		{"class", TokenClass},
		{"def", TokenDef},
		{"__init__", TokenInit},
		{"execute", TokenExecute},
		{"return", TokenReturn},
		{"self", TokenSelf},
		{"if", TokenPythonKeyword},
		{"None", TokenPythonKeyword},
		{"yield", TokenPythonKeyword},
		{"banana", TokenIdentifier},
		{"execute_all", TokenIdentifier},
	}

	for _, tc := range cases {
		tok := firstToken(t, tc.input)
		if tok.Type != tc.want {
			t.Errorf("Tokenize(%q): got %s, want %s", tc.input, tok.Type, tc.want)
		}
	}
}

func TestLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  TokenType
	}{
		{`"hello"`, TokenStringLit},
		{`'hello'`, TokenStringLit},
		{`"with \"escape\""`, TokenStringLit},
		{`'it\'s'`, TokenStringLit},
		{"42", TokenNumberLit},
		{"3.14", TokenNumberLit},
		{"6e23", TokenNumberLit},
		{"1.5e-3", TokenNumberLit},
		{`"""doc"""`, TokenDocstring},
		{"'''doc'''", TokenDocstring},
	}

	for _, tc := range cases {
		tokens := Tokenize(tc.input)
		if len(tokens) != 1 {
			t.Errorf("Tokenize(%q): got %v, want one token", tc.input, kinds(tokens))
			continue
		}
		if tokens[0].Type != tc.want {
			t.Errorf("Tokenize(%q): got %s, want %s", tc.input, tokens[0].Type, tc.want)
		}
	}
}

func TestMultilineDocstringPositions(t *testing.T) {
	text := "'''\n    A multiline\n    docstring.\n    '''"
	tokens := Tokenize(text)
	if len(tokens) != 1 || tokens[0].Type != TokenDocstring {
		t.Fatalf("got %v, want one DOCSTRING token", kinds(tokens))
	}
	tok := tokens[0]
	if tok.Start.Line != 1 || tok.Start.Column != 1 {
		t.Fatalf("start position: got %+v", tok.Start)
	}
	if tok.End.Line != 4 {
		t.Fatalf("end line: got %d, want 4", tok.End.Line)
	}
}

func TestPunctuation(t *testing.T) {
	cases := []struct {
		input string
		want  TokenType
	}{
		{"(", TokenLParen},
		{")", TokenRParen},
		{"[", TokenLBrack},
		{"]", TokenRBrack},
		{"{", TokenLBrace},
		{"}", TokenRBrace},
		{",", TokenComma},
		{":", TokenColon},
		{".", TokenDot},
		{"=", TokenEquals},
		{"->", TokenArrow},
	}

	for _, tc := range cases {
		tokens := Tokenize(tc.input)
		if len(tokens) != 1 || tokens[0].Type != tc.want {
			t.Errorf("Tokenize(%q): got %v, want [%s]", tc.input, kinds(tokens), tc.want)
		}
	}
}

func TestPositionAccuracy(t *testing.T) {
	tokens := Tokenize("class A:\n    pass")
	var passTok *Token
	for i := range tokens {
		if tokens[i].Literal == "pass" {
			passTok = &tokens[i]
		}
	}
	if passTok == nil {
		t.Fatalf("pass token not found in %v", kinds(tokens))
	}
	if passTok.Start.Line != 2 || passTok.Start.Column != 5 {
		t.Fatalf("pass start: got %+v, want line 2 column 5", passTok.Start)
	}
	if passTok.End.Line != 2 || passTok.End.Column != 9 {
		t.Fatalf("pass end: got %+v, want line 2 column 9", passTok.End)
	}
}

func TestNewlineRuns(t *testing.T) {
	tokens := Tokenize("a\n\n\nb")
	want := []TokenType{TokenIdentifier, TokenNewline, TokenIdentifier}
	if !reflect.DeepEqual(kinds(tokens), want) {
		t.Fatalf("got %v, want %v", kinds(tokens), want)
	}
	nl := tokens[1]
	if nl.Literal != "\n\n\n" {
		t.Fatalf("newline run lexeme: got %q", nl.Literal)
	}
	if nl.Start.Line != 1 || nl.End.Line != 4 {
		t.Fatalf("newline run span: got %+v..%+v", nl.Start, nl.End)
	}
	if tokens[2].Start.Line != 4 || tokens[2].Start.Column != 1 {
		t.Fatalf("token after newline run: got %+v", tokens[2].Start)
	}
}

func TestUnknownResilience(t *testing.T) {
	tokens := Tokenize("@$")
	if len(tokens) != 2 {
		t.Fatalf("got %v, want two UNKNOWN tokens", kinds(tokens))
	}
	if tokens[0].Type != TokenUnknown || tokens[0].Literal != "@" {
		t.Fatalf("first defect: got %s %q", tokens[0].Type, tokens[0].Literal)
	}
	if tokens[1].Type != TokenUnknown || tokens[1].Literal != "$" {
		t.Fatalf("second defect: got %s %q", tokens[1].Type, tokens[1].Literal)
	}

	for _, ch := range []string{"@", "$", "`", "~", "!", "%", "^", "&", ";"} {
		tok := firstToken(t, ch)
		if tok.Type != TokenUnknown {
			t.Errorf("Tokenize(%q): got %s, want UNKNOWN", ch, tok.Type)
		}
	}
}

func TestEmptyAndBlankInput(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Fatalf("empty input: got %v, want no tokens", kinds(got))
	}
	if got := Tokenize("   \t  "); len(got) != 0 {
		t.Fatalf("blank input: got %v, want no tokens", kinds(got))
	}
}

func TestPartitionCoverage(t *testing.T) {
	inputs := []string{
		"self.error_service.save(new_error)",
		"# ** command: add_error\nclass AddError:\n    pass\n",
		"x = a.const.FOO_BAR + 1.5e3  # trailer",
		"@$%\nbroken '''doc\nstring''' tail",
	}

	for _, input := range inputs {
		tokens := Tokenize(input)
		pos := 0
		for i, tok := range tokens {
			if tok.StartOffset < pos {
				t.Fatalf("input %q: token %d overlaps previous (start %d < %d)",
					input, i, tok.StartOffset, pos)
			}
			gap := input[pos:tok.StartOffset]
			if strings.Trim(gap, " \t\r") != "" {
				t.Fatalf("input %q: non-whitespace gap %q before token %d", input, gap, i)
			}
			if input[tok.StartOffset:tok.EndOffset] != tok.Literal {
				t.Fatalf("input %q: token %d lexeme %q does not match span %q",
					input, i, tok.Literal, input[tok.StartOffset:tok.EndOffset])
			}
			pos = tok.EndOffset
		}
		if strings.Trim(input[pos:], " \t\r") != "" {
			t.Fatalf("input %q: trailing input %q not covered", input, input[pos:])
		}
	}
}

func TestDeterminism(t *testing.T) {
	input := "# *** imports\nimport os\nself.verify(x == 1)\n@$"
	first := Tokenize(input)
	second := Tokenize(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced differing token sequences")
	}
}

func TestTokenizeAtTranslatesPositions(t *testing.T) {
	tokens := TokenizeAt("class A:\n    pass", Position{Line: 10, Column: 1})
	if tokens[0].Start.Line != 10 {
		t.Fatalf("first line: got %d, want 10", tokens[0].Start.Line)
	}
	last := tokens[len(tokens)-1]
	if last.Literal != "pass" || last.Start.Line != 11 || last.Start.Column != 5 {
		t.Fatalf("pass token: got %q at %+v", last.Literal, last.Start)
	}

	// Column shift only applies to the unit's first line.
	shifted := TokenizeAt("a b\nc", Position{Line: 1, Column: 5})
	if shifted[0].Start.Column != 5 || shifted[1].Start.Column != 7 {
		t.Fatalf("first-line columns: got %d and %d", shifted[0].Start.Column, shifted[1].Start.Column)
	}
	lastTok := shifted[len(shifted)-1]
	if lastTok.Start.Line != 2 || lastTok.Start.Column != 1 {
		t.Fatalf("second-line token: got %+v", lastTok.Start)
	}
}

func TestFullCommandSnippet(t *testing.T) {
	text := `# ** command: add_error
class AddError(DomainEvent):
    def __init__(self, error_service: ErrorService):
        self.error_service = error_service

    @DomainEvent.parameters_required(['id', 'name'])
    def execute(self, id: str, **kwargs):
        exists = self.error_service.exists(id)
        self.verify(
            expression=exists is False,
            error_code=a.const.ERROR_ALREADY_EXISTS_ID,
        )
        new_error = Error.new(id=id, name=name)
        self.error_service.save(new_error)
        return new_error
`

	counts := CountKinds(Tokenize(text))
	wantPresent := []TokenType{
		TokenArtifactSection, TokenClass, TokenInit, TokenExecute,
		TokenParametersRequired, TokenVerify, TokenServiceCall,
		TokenFactoryCall, TokenConstRef, TokenReturn,
	}
	for _, k := range wantPresent {
		if counts[k] == 0 {
			t.Errorf("expected at least one %s token", k)
		}
	}
	if counts[TokenServiceCall] != 2 {
		t.Errorf("service calls: got %d, want 2", counts[TokenServiceCall])
	}
	// The splat in **kwargs is outside the dialect; both asterisks surface
	// as defect tokens instead of aborting the scan.
	if counts[TokenUnknown] != 2 {
		t.Errorf("defects: got %d %v, want the two splat asterisks",
			counts[TokenUnknown], Defects(Tokenize(text)))
	}
}

func BenchmarkTokenize(b *testing.B) {
	snippet := strings.Repeat(`# ** command: add_error
class AddError(DomainEvent):
    def execute(self, **kwargs):
        self.verify(expression=True, error_code=a.const.BAD_ID)
        return self.error_service.save(Error.new(id=id))
`, 50)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Tokenize(snippet)
	}
}
