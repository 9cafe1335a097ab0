// Package selector validates user-selected files before upload.
//
// A candidate becomes a Document only when its filename ends with ".pptx"
// (case-sensitive). Rejections surface as validation RequestErrors carrying
// the message shown to the user.
package selector
