package dto

type ExportRequest struct {
	Artifact string   `json:"artifact" validate:"required,oneof=summary chat memo"`
	Formats  []string `json:"formats" validate:"required,min=1,dive,oneof=docx pdf plaintext"`
	FileName string   `json:"file_name"`
}

type ExportResultDTO struct {
	Format   string `json:"format"`
	FileName string `json:"file_name"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

type ExportResponse struct {
	Artifact string            `json:"artifact"`
	Results  []ExportResultDTO `json:"results"`
}

type EmailExportRequest struct {
	Artifact  string `json:"artifact" validate:"required,oneof=summary chat memo"`
	Format    string `json:"format" validate:"required,oneof=docx pdf plaintext"`
	Recipient string `json:"recipient" validate:"required,email"`
	FileName  string `json:"file_name"`
}

type EmailExportResponse struct {
	Recipient string `json:"recipient"`
	FileName  string `json:"file_name"`
}
