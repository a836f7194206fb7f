// Package workflow sequences the publish pipeline against the platform:
// token, cover upload, content images, draft, publish.
package workflow

import (
	"context"

	"wepub/content"
	"wepub/images"
	"wepub/types"
	"wepub/wechat"
)

// Runner executes one publish request end to end. It is safe for
// concurrent use: every run is strictly sequential and keeps all
// intermediate state (token, media ids) on its own stack.
type Runner struct {
	client    *wechat.Client
	fetcher   *images.Fetcher
	processor *content.Processor
}

// NewRunner wires a runner from its collaborators. Constructed once at
// process start and injected; no package-level singletons.
func NewRunner(client *wechat.Client, fetcher *images.Fetcher) *Runner {
	return &Runner{
		client:    client,
		fetcher:   fetcher,
		processor: content.NewProcessor(fetcher, client),
	}
}

// Run drives the forward-only pipeline. Any stage failure aborts the run
// with the originating error; nothing already pushed to the platform
// (uploaded media, a created draft) is rolled back. The single exception
// is the content-image stage, which skips failed images instead of
// aborting.
func (r *Runner) Run(ctx context.Context, requestID string, req types.PublishRequest) (*types.PublishResult, error) {
	trail := newProgress(requestID)

	trail.enter(StageAcquireToken)
	token, err := r.client.GetAccessToken(ctx, req.AppID, req.AppSecret)
	if err != nil {
		return nil, trail.fail(err)
	}
	trail.log("access token acquired")

	trail.enter(StageUploadCover)
	coverID, err := r.uploadCover(ctx, token, req.CoverImageURL)
	if err != nil {
		return nil, trail.fail(err)
	}
	trail.log("cover uploaded: media_id=%s", coverID)

	trail.enter(StageProcessImages)
	resolvedHTML, results := r.processor.ProcessContentImages(ctx, req.ContentHTML, req.ContentImageURLs, token)
	media := content.SuccessfulMedia(results)
	trail.log("content images: %d uploaded, %d skipped", len(media), len(results)-len(media))

	trail.enter(StageCreateDraft)
	draftID, err := r.client.CreateDraft(ctx, token, req.Title, req.Author, resolvedHTML, coverID)
	if err != nil {
		return nil, trail.fail(err)
	}
	// Logged before publish so a failed publish still leaves the draft id
	// on record.
	trail.log("draft created: media_id=%s", draftID)

	trail.enter(StagePublish)
	publishID, err := r.client.SubmitPublish(ctx, token, draftID)
	if err != nil {
		return nil, trail.fail(err)
	}

	trail.enter(StageComplete)
	trail.log("published: publish_id=%s", publishID)

	return &types.PublishResult{
		DraftMediaID:    draftID,
		CoverMediaID:    coverID,
		ContentMediaIDs: media,
		PublishID:       publishID,
	}, nil
}

func (r *Runner) uploadCover(ctx context.Context, token, coverURL string) (string, error) {
	data, err := r.fetcher.Fetch(ctx, coverURL)
	if err != nil {
		return "", err
	}
	return r.client.UploadImage(ctx, token, data)
}
