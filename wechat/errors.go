package wechat

import "fmt"

// AuthError is returned when the token exchange fails. Body carries the raw
// upstream response when one was received.
type AuthError struct {
	Body string
	Err  error
}

func (e AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("acquire access token: %v", e.Err)
	}
	return fmt.Sprintf("acquire access token: unexpected response %s", e.Body)
}

func (e AuthError) Unwrap() error { return e.Err }

// UploadError is returned when a media upload fails.
type UploadError struct {
	Body string
	Err  error
}

func (e UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload media: %v", e.Err)
	}
	return fmt.Sprintf("upload media: unexpected response %s", e.Body)
}

func (e UploadError) Unwrap() error { return e.Err }

// DraftError is returned when draft creation fails, including failures of
// the unescape transform applied to the article text.
type DraftError struct {
	Body string
	Err  error
}

func (e DraftError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("create draft: %v", e.Err)
	}
	return fmt.Sprintf("create draft: unexpected response %s", e.Body)
}

func (e DraftError) Unwrap() error { return e.Err }

// PublishError is returned when freepublish/submit fails or reports a
// non-zero errcode.
type PublishError struct {
	ErrCode int
	ErrMsg  string
	Err     error
}

func (e PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publish draft: %v", e.Err)
	}
	return fmt.Sprintf("publish draft: errcode %d: %s", e.ErrCode, e.ErrMsg)
}

func (e PublishError) Unwrap() error { return e.Err }
