package note

import "strings"

// Fallback deterministically builds a data-sparse note in the format's
// section layout. Every section reads "Not mentioned." except History
// of Present Illness, which carries the trimmed transcript verbatim
// when non-empty. Pure, total, no external dependency: this is the
// guaranteed terminal producer and must never fail.
func Fallback(transcriptText string, f Format) Result {
	hpi := strings.TrimSpace(transcriptText)
	if hpi == "" {
		hpi = NotMentioned
	}
	return Result{
		RawText:        strings.ReplaceAll(lookup(f).fallback, hpiPlaceholder, hpi),
		ProducingModel: FallbackModel,
	}
}
