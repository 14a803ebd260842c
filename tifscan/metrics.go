package tifscan

import "sort"

// Metrics are the domain aggregates a downstream consumer derives from one
// token stream.
type Metrics struct {
	CommandsDetected             int            `json:"commands_detected"`
	ExecuteMethodsFound          int            `json:"execute_methods_found"`
	VerifyCalls                  int            `json:"verify_calls"`
	ParametersRequiredDecorators int            `json:"parameters_required_decorators"`
	ServiceCalls                 int            `json:"service_calls"`
	FactoryCalls                 int            `json:"factory_calls"`
	ConstantsReferenced          int            `json:"constants_referenced"`
	DocstringsFound              int            `json:"docstrings_found"`
	TopTokenTypes                map[string]int `json:"top_token_types"`
}

// CountKinds tallies tokens per kind.
func CountKinds(tokens []Token) map[TokenType]int {
	counts := make(map[TokenType]int)
	for _, t := range tokens {
		counts[t.Type]++
	}
	return counts
}

// Defects returns every UNKNOWN token in stream order, so a caller can
// enumerate lexical defects in one pass without re-scanning.
func Defects(tokens []Token) []Token {
	var defects []Token
	for _, t := range tokens {
		if t.Type == TokenUnknown {
			defects = append(defects, t)
		}
	}
	return defects
}

// ComputeMetrics derives the domain metrics from a token stream.
func ComputeMetrics(tokens []Token) Metrics {
	counts := CountKinds(tokens)
	return Metrics{
		CommandsDetected:             counts[TokenClass],
		ExecuteMethodsFound:          counts[TokenExecute],
		VerifyCalls:                  counts[TokenVerify],
		ParametersRequiredDecorators: counts[TokenParametersRequired],
		ServiceCalls:                 counts[TokenServiceCall],
		FactoryCalls:                 counts[TokenFactoryCall],
		ConstantsReferenced:          counts[TokenConstRef],
		DocstringsFound:              counts[TokenDocstring],
		TopTokenTypes:                topKinds(counts, 10),
	}
}

func topKinds(counts map[TokenType]int, n int) map[string]int {
	type kc struct {
		kind  TokenType
		count int
	}
	ranked := make([]kc, 0, len(counts))
	for k, c := range counts {
		ranked = append(ranked, kc{k, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].kind < ranked[j].kind
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	top := make(map[string]int, len(ranked))
	for _, e := range ranked {
		top[string(e.kind)] = e.count
	}
	return top
}

// Section is one per-unit snippet of a token stream, split at
// ARTIFACT_SECTION boundaries. Tokens before the first boundary form an
// unnamed prologue section.
type Section struct {
	Name   string  `json:"name"`
	Tokens []Token `json:"tokens"`
}

// SplitSections segments a token stream into per-unit snippets.
func SplitSections(tokens []Token) []Section {
	var sections []Section
	current := Section{}
	flush := func() {
		if current.Name != "" || len(current.Tokens) > 0 {
			sections = append(sections, current)
		}
	}
	for _, t := range tokens {
		if t.Type == TokenArtifactSection {
			flush()
			name := t.Value
			if name == "" {
				name = t.Literal
			}
			current = Section{Name: name}
		}
		current.Tokens = append(current.Tokens, t)
	}
	flush()
	return sections
}
