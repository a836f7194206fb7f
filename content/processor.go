// Package content resolves {imageN} placeholders in article HTML against
// the platform media library.
package content

import (
	"context"
	"fmt"
	"strings"

	"wepub/logutil"
)

// EmbedTag is substituted for each successfully uploaded content image.
// The tag deliberately carries empty src attributes: the platform expects
// inline images to be wired through its own draft-content mechanism, not
// referenced by media id or URL. Downstream consumers rely on this exact
// shape, so do not make it dynamic.
const EmbedTag = `<img data-ratio="1.33" data-src="" data-type="jpeg" data-w="1280" src=""/>`

// Fetcher downloads an image into memory.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Uploader pushes image bytes to the media library.
type Uploader interface {
	UploadImage(ctx context.Context, token string, image []byte) (string, error)
}

// ImageResult records the outcome for one content image. Exactly one of
// MediaID and Err is set.
type ImageResult struct {
	Placeholder string
	URL         string
	MediaID     string
	Err         error
}

// Processor runs the per-image fetch/upload/substitute loop.
type Processor struct {
	fetcher  Fetcher
	uploader Uploader
}

// NewProcessor wires a processor from its collaborators.
func NewProcessor(fetcher Fetcher, uploader Uploader) *Processor {
	return &Processor{fetcher: fetcher, uploader: uploader}
}

// ProcessContentImages fetches and uploads each image in imageURLs, then
// replaces every occurrence of the image's `{imageN}` placeholder in
// contentHTML with the embed tag. N is the zero-based index into
// imageURLs.
//
// Failures are best-effort per image: a fetch or upload error records an
// ImageResult with Err set, leaves that placeholder unresolved, and moves
// on. HTML already free of placeholders passes through unchanged, so
// repeat runs are no-ops.
func (p *Processor) ProcessContentImages(ctx context.Context, contentHTML string, imageURLs []string, token string) (string, []ImageResult) {
	results := make([]ImageResult, 0, len(imageURLs))

	for i, imageURL := range imageURLs {
		res := ImageResult{
			Placeholder: fmt.Sprintf("image%d", i),
			URL:         imageURL,
		}

		data, err := p.fetcher.Fetch(ctx, imageURL)
		if err != nil {
			res.Err = err
			logutil.Warnf("skipping content image %d: %v", i, err)
			results = append(results, res)
			continue
		}

		mediaID, err := p.uploader.UploadImage(ctx, token, data)
		if err != nil {
			res.Err = err
			logutil.Warnf("skipping content image %d (%s): %v", i, imageURL, err)
			results = append(results, res)
			continue
		}

		contentHTML = strings.ReplaceAll(contentHTML, "{"+res.Placeholder+"}", EmbedTag)
		res.MediaID = mediaID
		results = append(results, res)
	}

	return contentHTML, results
}

// SuccessfulMedia collapses results into the placeholder→media-id mapping
// reported to the caller. Failed images are simply absent.
func SuccessfulMedia(results []ImageResult) map[string]string {
	media := make(map[string]string)
	for _, r := range results {
		if r.Err == nil {
			media[r.Placeholder] = r.MediaID
		}
	}
	return media
}
