package dto

type DocumentResponse struct {
	ID           uint   `json:"id"`
	FilePath     string `json:"file_path"`
	DocumentType string `json:"document_type"`
}
