package models

// PromptVersion is one immutable snapshot of a prompt's text. All versions
// of a logical prompt share a promptId; versions start at 1 and only grow.
type PromptVersion struct {
	PromptID          string         `json:"promptId"`
	Flow              string         `json:"flow"`
	PromptTitle       string         `json:"promptTitle"`
	Mode              string         `json:"mode"`
	PromptDescription string         `json:"promptDescription"`
	Version           int            `json:"version"`
	Prompt            string         `json:"prompt"`
	Metadata          PromptMetadata `json:"metadata"`
}

type PromptMetadata struct {
	Author      string `json:"author,omitempty"`
	Changelog   string `json:"changelog,omitempty"`
	Tokens      int    `json:"tokens,omitempty"`
	DisplayDate string `json:"displayDate,omitempty"`
	DisplayTime string `json:"displayTime,omitempty"`
}
