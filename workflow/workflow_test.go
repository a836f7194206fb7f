package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"wepub/content"
	"wepub/images"
	"wepub/types"
	"wepub/wechat"
)

// fakePlatform fakes the WeChat API and an image host on one server.
type fakePlatform struct {
	mu           sync.Mutex
	tokenCalls   int
	uploadCalls  int
	draftCalls   int
	publishCalls int

	tokenFail   bool
	publishFail bool

	draftContent string
	draftThumb   string
}

func (f *fakePlatform) server(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.tokenCalls++
		fail := f.tokenFail
		f.mu.Unlock()
		if fail {
			w.Write([]byte(`{"errcode":40013,"errmsg":"invalid appid"}`))
			return
		}
		w.Write([]byte(`{"access_token":"TOK"}`))
	})

	mux.HandleFunc("/material/add_material", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.uploadCalls++
		n := f.uploadCalls
		f.mu.Unlock()
		fmt.Fprintf(w, `{"media_id":"M%d"}`, n)
	})

	mux.HandleFunc("/draft/add", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Articles []struct {
				Content      string `json:"content"`
				ThumbMediaID string `json:"thumb_media_id"`
			} `json:"articles"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode draft payload: %v", err)
		}
		f.mu.Lock()
		f.draftCalls++
		if len(payload.Articles) == 1 {
			f.draftContent = payload.Articles[0].Content
			f.draftThumb = payload.Articles[0].ThumbMediaID
		}
		f.mu.Unlock()
		w.Write([]byte(`{"media_id":"DRAFT-1"}`))
	})

	mux.HandleFunc("/freepublish/submit", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.publishCalls++
		fail := f.publishFail
		f.mu.Unlock()
		if fail {
			w.Write([]byte(`{"errcode":53503,"errmsg":"draft not ready"}`))
			return
		}
		w.Write([]byte(`{"errcode":0,"errmsg":"ok","publish_id":"P-1"}`))
	})

	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("jpeg-bytes"))
	})

	return httptest.NewServer(mux)
}

func newTestRunner(base string) *Runner {
	return NewRunner(wechat.NewClient(base), images.NewFetcher())
}

func baseRequest(srvURL string) types.PublishRequest {
	return types.PublishRequest{
		AppID:         "app-1",
		AppSecret:     "sec-1",
		Title:         "A Title",
		Author:        "ann",
		ContentHTML:   "<p>{image0}</p><p>{image1}</p>",
		CoverImageURL: srvURL + "/img/cover.jpg",
		ContentImageURLs: []string{
			srvURL + "/img/a.jpg",
			srvURL + "/img/b.jpg",
		},
	}
}

func TestRunHappyPath(t *testing.T) {
	platform := &fakePlatform{}
	srv := platform.server(t)
	defer srv.Close()

	result, err := newTestRunner(srv.URL).Run(context.Background(), "req-1", baseRequest(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	if result.CoverMediaID != "M1" {
		t.Errorf("cover media id = %q; want M1 (first upload)", result.CoverMediaID)
	}
	if result.DraftMediaID != "DRAFT-1" {
		t.Errorf("draft media id = %q", result.DraftMediaID)
	}
	if result.PublishID != "P-1" {
		t.Errorf("publish id = %q", result.PublishID)
	}
	want := map[string]string{"image0": "M2", "image1": "M3"}
	if len(result.ContentMediaIDs) != len(want) {
		t.Fatalf("content media ids = %v; want %v", result.ContentMediaIDs, want)
	}
	for k, v := range want {
		if result.ContentMediaIDs[k] != v {
			t.Errorf("content media ids[%s] = %q; want %q", k, result.ContentMediaIDs[k], v)
		}
	}

	if platform.uploadCalls != 3 {
		t.Errorf("upload calls = %d; want 3 (cover + 2 content)", platform.uploadCalls)
	}
	if strings.Contains(platform.draftContent, "{image") {
		t.Errorf("draft content still has placeholders: %s", platform.draftContent)
	}
	if got := strings.Count(platform.draftContent, content.EmbedTag); got != 2 {
		t.Errorf("embed tags in draft = %d; want 2", got)
	}
	if platform.draftThumb != "M1" {
		t.Errorf("draft thumb = %q; want cover media id", platform.draftThumb)
	}
}

func TestRunAuthFailureShortCircuits(t *testing.T) {
	platform := &fakePlatform{tokenFail: true}
	srv := platform.server(t)
	defer srv.Close()

	_, err := newTestRunner(srv.URL).Run(context.Background(), "req-2", baseRequest(srv.URL))
	if err == nil {
		t.Fatal("expected auth failure")
	}
	if !strings.Contains(err.Error(), string(StageAcquireToken)) {
		t.Errorf("error = %v; want stage context", err)
	}
	if platform.uploadCalls != 0 || platform.draftCalls != 0 || platform.publishCalls != 0 {
		t.Errorf("calls after auth failure: upload=%d draft=%d publish=%d; want none",
			platform.uploadCalls, platform.draftCalls, platform.publishCalls)
	}
}

func TestRunCoverFetchFailureAborts(t *testing.T) {
	platform := &fakePlatform{}
	srv := platform.server(t)
	defer srv.Close()

	req := baseRequest(srv.URL)
	req.CoverImageURL = srv.URL + "/img/bad-cover.jpg"

	_, err := newTestRunner(srv.URL).Run(context.Background(), "req-3", req)
	if err == nil {
		t.Fatal("expected cover fetch failure")
	}
	if !strings.Contains(err.Error(), string(StageUploadCover)) {
		t.Errorf("error = %v; want stage context", err)
	}
	if platform.uploadCalls != 0 || platform.draftCalls != 0 {
		t.Errorf("upload=%d draft=%d after cover failure; want none", platform.uploadCalls, platform.draftCalls)
	}
}

func TestRunContentImageFailureDoesNotAbort(t *testing.T) {
	platform := &fakePlatform{}
	srv := platform.server(t)
	defer srv.Close()

	req := baseRequest(srv.URL)
	req.ContentImageURLs[1] = srv.URL + "/img/bad.jpg"

	result, err := newTestRunner(srv.URL).Run(context.Background(), "req-4", req)
	if err != nil {
		t.Fatalf("run should succeed despite one bad image: %v", err)
	}

	if _, ok := result.ContentMediaIDs["image1"]; ok {
		t.Error("mapping should omit the failed image")
	}
	if result.ContentMediaIDs["image0"] != "M2" {
		t.Errorf("image0 media id = %q; want M2", result.ContentMediaIDs["image0"])
	}
	if !strings.Contains(platform.draftContent, "{image1}") {
		t.Error("failed image's placeholder should remain in the draft content")
	}
	if strings.Contains(platform.draftContent, "{image0}") {
		t.Error("successful image's placeholder should be resolved")
	}
}

func TestRunPublishFailureAfterDraft(t *testing.T) {
	platform := &fakePlatform{publishFail: true}
	srv := platform.server(t)
	defer srv.Close()

	_, err := newTestRunner(srv.URL).Run(context.Background(), "req-5", baseRequest(srv.URL))
	if err == nil {
		t.Fatal("expected publish failure")
	}
	if !strings.Contains(err.Error(), string(StagePublish)) {
		t.Errorf("error = %v; want stage context", err)
	}
	// The draft was created and stays created: no rollback of any kind.
	if platform.draftCalls != 1 {
		t.Errorf("draft calls = %d; want 1", platform.draftCalls)
	}
	if platform.publishCalls != 1 {
		t.Errorf("publish calls = %d; want exactly 1 (no retries)", platform.publishCalls)
	}
}
