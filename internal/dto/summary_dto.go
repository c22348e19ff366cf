package dto

type GenerateSummaryRequest struct {
	// ModelOption defaults to the configured summary model when omitted.
	ModelOption string `json:"model_option"`
}

type SummaryResponse struct {
	Summary        string `json:"summary"`
	DisplaySummary string `json:"display_summary"`
}
