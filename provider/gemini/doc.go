// Package gemini adapts the generative AI provider for the two model-backed
// operations: extracting place names from a disaster description and
// verifying report images.
//
// The vision verdict is constrained at this boundary: the model's free text
// is matched against {Verified, Rejected} and anything else becomes Unknown
// with a logged anomaly, so callers never see an unconstrained answer.
package gemini
