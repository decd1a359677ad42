package request

// CreateDocumentRequest registers a new locker document. The document
// starts in processing status; extraction completes out of band and flips
// it to processed or failed.
type CreateDocumentRequest struct {
	CompanyID    string  `json:"companyId"`
	FileName     string  `json:"fileName"`
	Vendor       string  `json:"vendor,omitempty"`
	Total        float64 `json:"total"`
	DocumentDate string  `json:"documentDate"`
	ExpiryDate   *string `json:"expiryDate,omitempty"`
}

// UpdateDocumentStatusRequest transitions a document's processing status.
type UpdateDocumentStatusRequest struct {
	Status string `json:"status"`
}

// ShareLinkRequest mints a time-bounded share token for a document.
type ShareLinkRequest struct {
	TTLSeconds int `json:"ttlSeconds,omitempty"`
}
