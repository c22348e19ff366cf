package dto

type DraftMemoRequest struct {
	ModelOption string `json:"model_option"`
}

type DraftMemoResponse struct {
	MemoText string `json:"memo_text"`
}

type ExportMemoRequest struct {
	FileName string `json:"file_name"`
}

type ExportMemoResponse struct {
	FileName  string `json:"file_name"`
	Formatted bool   `json:"formatted"` // false when the styled export fell back to plain conversion
}
