// Package markup turns free-form model output into display-safe markup. It is
// shared by the chat, quiz, and document-analysis surfaces.
package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// Fallback is returned for empty input so callers never render a blank bubble.
const Fallback = "I received your message but have nothing to say."

var (
	fenceRe  = regexp.MustCompile("(?s)```(\\w+)?\\n?(.*?)```")
	inlineRe = regexp.MustCompile("`([^`]+)`")
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
)

// Format converts text into markup: fenced code blocks become <pre><code>,
// inline backtick spans become <code>, newlines become <br>, ** pairs become
// <strong>, and residual * pairs become <em>.
//
// Code regions are lifted out as opaque tokens before the break and emphasis
// passes run, so code interiors are never re-interpreted. The fence language
// hint is discarded. Text with no special markup passes through unchanged
// except for the line-break conversion.
func Format(text string) string {
	if text == "" {
		return Fallback
	}

	var code []string
	stash := func(wrapped string) string {
		code = append(code, wrapped)
		return fmt.Sprintf("\x00%d\x00", len(code)-1)
	}

	out := fenceRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := fenceRe.FindStringSubmatch(m)
		return stash("<pre><code>" + sub[2] + "</code></pre>")
	})
	out = inlineRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := inlineRe.FindStringSubmatch(m)
		return stash("<code>" + sub[1] + "</code>")
	})

	out = strings.ReplaceAll(out, "\n", "<br>")
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")

	for i, wrapped := range code {
		out = strings.Replace(out, fmt.Sprintf("\x00%d\x00", i), wrapped, 1)
	}
	return out
}
