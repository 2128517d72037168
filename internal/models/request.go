package models

type CreatePromptRequest struct {
	Flow              string         `json:"flow"`
	PromptTitle       string         `json:"promptTitle"`
	Mode              string         `json:"mode"`
	PromptDescription string         `json:"promptDescription"`
	Prompt            string         `json:"prompt"`
	Metadata          PromptMetadata `json:"metadata"`
}

type UpdatePromptRequest struct {
	Prompt   string         `json:"prompt"`
	Metadata PromptMetadata `json:"metadata"`
}
