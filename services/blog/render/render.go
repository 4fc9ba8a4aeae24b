// Package render converts raw blog text with embedded [IMAGE:token]
// directives and lightweight emphasis markers into an ordered list of
// display blocks.
package render

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindText       Kind = "text"
	KindImage      Kind = "image"
	KindImageGroup Kind = "image_group"
	KindSpacer     Kind = "spacer"
)

// FallbackCaption is shown in place of an image that fails to load.
const FallbackCaption = "Image not available"

// adjacencyThreshold is the maximum character gap between the end of one
// image directive and the start of the next for the two to be rendered
// side by side rather than as separate images.
const adjacencyThreshold = 50

type Image struct {
	Token string `json:"token"`
	URL   string `json:"url"`
	Alt   string `json:"alt"`
}

type Block struct {
	Kind   Kind    `json:"kind"`
	Text   string  `json:"text,omitempty"`
	Images []Image `json:"images,omitempty"`
}

var (
	directiveRegexp = regexp.MustCompile(`\[IMAGE:([^\]]*)\]`)

	boldRegexp      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRegexp    = regexp.MustCompile(`\*(.*?)\*`)
	underlineRegexp = regexp.MustCompile(`__(.*?)__`)
)

// Document renders a whole post: one Paragraph call per newline-separated
// paragraph, in source order.
func Document(content string, imageBaseURL string) []Block {
	blocks := []Block{}
	for _, paragraph := range strings.Split(content, "\n") {
		blocks = append(blocks, Paragraph(paragraph, imageBaseURL)...)
	}
	return blocks
}

// Paragraph renders a single paragraph into blocks: a single forward pass
// over the immutable input, emitting text segments and image (group) blocks
// in their original order. It is total: malformed directive syntax simply
// stays literal text, and a blank paragraph becomes a spacer.
func Paragraph(text string, imageBaseURL string) []Block {
	matches := directiveRegexp.FindAllStringSubmatchIndex(text, -1)

	if len(matches) == 0 {
		if strings.TrimSpace(text) == "" {
			return []Block{{Kind: KindSpacer}}
		}
		return []Block{textBlock(text)}
	}

	blocks := []Block{}
	pos := 0

	for start := 0; start < len(matches); {
		// extend the run while the next directive starts within the
		// adjacency threshold of where the previous one ended
		end := start
		for end+1 < len(matches) && matches[end+1][0]-matches[end][1] < adjacencyThreshold {
			end++
		}

		if segment := text[pos:matches[start][0]]; strings.TrimSpace(segment) != "" {
			blocks = append(blocks, textBlock(segment))
		}

		images := make([]Image, 0, end-start+1)
		for i := start; i <= end; i++ {
			token := text[matches[i][2]:matches[i][3]]
			images = append(images, Image{
				Token: token,
				URL:   joinImageURL(imageBaseURL, token),
				Alt:   FallbackCaption,
			})
		}

		if len(images) == 1 {
			blocks = append(blocks, Block{Kind: KindImage, Images: images})
		} else {
			blocks = append(blocks, Block{Kind: KindImageGroup, Images: images})
		}

		// prose between grouped directives survives, after the group
		for i := start; i < end; i++ {
			if segment := text[matches[i][1]:matches[i+1][0]]; strings.TrimSpace(segment) != "" {
				blocks = append(blocks, textBlock(segment))
			}
		}

		pos = matches[end][1]
		start = end + 1
	}

	if segment := text[pos:]; strings.TrimSpace(segment) != "" {
		blocks = append(blocks, textBlock(segment))
	}

	return blocks
}

func textBlock(text string) Block {
	return Block{
		Kind: KindText,
		Text: resolveEmphasis(text),
	}
}

// resolveEmphasis substitutes the inline markers in fixed order: bold,
// then italic, then underline. Each pattern matches the shortest span.
func resolveEmphasis(text string) string {
	text = boldRegexp.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRegexp.ReplaceAllString(text, "<em>$1</em>")
	text = underlineRegexp.ReplaceAllString(text, "<u>$1</u>")
	return text
}

func joinImageURL(base string, token string) string {
	return strings.TrimSuffix(base, "/") + "/" + token
}
