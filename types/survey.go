package types

// SurveyCommentRequest attaches a comment to an answered survey.
type SurveyCommentRequest struct {
	Comment string `json:"comment"`
	Token   string `json:"token"`
}
