package callback

import "encoding/json"

// Summary is the callback payload: a tagged union of success/failure, mirroring
// the source's #[serde(untagged)] enum via a hand-rolled MarshalJSON.
type Summary struct {
	// success fields
	File *string `json:"-"`
	// failure fields
	Error     *string `json:"-"`
	Backtrace *string `json:"-"`

	S3Folder string `json:"-"`
}

// NewSuccess builds a success Summary: { "file": ..., "s3_folder": ... }.
func NewSuccess(file, s3Folder string) Summary {
	return Summary{File: &file, S3Folder: s3Folder}
}

// NewFailure builds a failure Summary: { "error": ..., "backtrace": ..., "s3_folder": ... }.
func NewFailure(errMsg, backtrace, s3Folder string) Summary {
	return Summary{Error: &errMsg, Backtrace: &backtrace, S3Folder: s3Folder}
}

func (s Summary) MarshalJSON() ([]byte, error) {
	if s.File != nil {
		return json.Marshal(struct {
			File     string `json:"file"`
			S3Folder string `json:"s3_folder"`
		}{File: *s.File, S3Folder: s.S3Folder})
	}
	errMsg := ""
	if s.Error != nil {
		errMsg = *s.Error
	}
	bt := ""
	if s.Backtrace != nil {
		bt = *s.Backtrace
	}
	return json.Marshal(struct {
		Error     string `json:"error"`
		Backtrace string `json:"backtrace"`
		S3Folder  string `json:"s3_folder"`
	}{Error: errMsg, Backtrace: bt, S3Folder: s.S3Folder})
}
