package llm

import "strings"

// legacyTokenParamPrefixes lists model name prefixes that still take the
// token limit as "max_tokens". Everything else gets
// "max_completion_tokens".
var legacyTokenParamPrefixes = []string{
	"gpt-3.5",
	"gpt-4-",
	"gpt-4o",
	"gpt-4.1",
}

// reasoningModelPrefixes lists model families that reject sampling
// parameters (temperature, top_p, penalties). The client must omit them
// entirely rather than send defaults.
var reasoningModelPrefixes = []string{
	"o1",
	"o3",
	"o4",
	"gpt-5",
}

// usesLegacyTokenParam reports whether the model takes "max_tokens".
func usesLegacyTokenParam(model string) bool {
	for _, prefix := range legacyTokenParamPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// supportsSampling reports whether sampling parameters may be sent.
func supportsSampling(model string) bool {
	for _, prefix := range reasoningModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return false
		}
	}
	return true
}
